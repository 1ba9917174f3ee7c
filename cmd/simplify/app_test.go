package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/simplify/i18n"
)

const testSchema = `
types:
  User:
    attributes:
      - {name: name, type: string, mandatory: true}
      - {name: country, type: string, default: Brazil}
      - {name: is_admin, values: [true, false], default: false}
      - {name: groups, type: "[Group]"}
  Group:
    attributes:
      - {name: title, type: string, mandatory: true}
  Tags:
    attributes:
      - {name: items, type: "[string]", invisible: true}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	good := writeFile(t, dir, "good.json", `{"name":"n","groups":[{"title":"ops"}]}`)
	missing := writeFile(t, dir, "missing.yaml", "country: USA\n")
	badFlag := writeFile(t, dir, "bad.json", `{"name":"n","is_admin":1}`)

	out, _, err := run(t, "", "validate", "-s", schema, "-t", "User", good)
	require.NoError(t, err)
	assert.Contains(t, out, "good.json: ok")

	out, _, err = run(t, "", "validate", "-s", schema, "-t", "User", good, missing, badFlag)
	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "missing.yaml: required at /: missing mandatory attribute: name")
	assert.Contains(t, out, "bad.json: invalid_enum at /is_admin")
	assert.Contains(t, err.Error(), "2 of 3")
}

func TestValidate_Stdin(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)

	out, _, err := run(t, `{"name":"n"}`, "validate", "-s", schema, "-t", "User", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "-: ok")
}

func TestValidate_DuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	doc := writeFile(t, dir, "dup.json", `{"name":"a","name":"b"}`)

	_, errOut, err := run(t, "", "validate", "-s", schema, "-t", "User", "--duplicate-keys", "warn", doc)
	require.NoError(t, err)
	assert.Contains(t, errOut, "duplicate")

	out, _, err := run(t, "", "validate", "-s", schema, "-t", "User", "--duplicate-keys", "error", doc)
	require.Error(t, err)
	assert.Contains(t, out, "duplicate_key at /name")
}

func TestValidate_Japanese(t *testing.T) {
	defer i18n.SetLanguage("en")
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	doc := writeFile(t, dir, "empty.json", `{}`)

	out, _, err := run(t, "", "validate", "-s", schema, "-t", "User", "--lang", "ja", doc)
	require.Error(t, err)
	assert.Contains(t, out, "必須属性が不足しています")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	doc := writeFile(t, dir, "user.yaml", "name: n\ngroups:\n  - title: ops\nemail: e@x.y\n")

	out, errOut, err := run(t, "", "convert", "-s", schema, "-t", "User", "--dump", doc)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "n", got["name"])
	assert.Equal(t, "Brazil", got["country"])
	assert.Equal(t, false, got["is_admin"])
	assert.Equal(t, "e@x.y", got["email"])
	assert.Equal(t, []any{map[string]any{"title": "ops"}}, got["groups"])
	assert.Contains(t, errOut, "(map[string]interface {})")

	out, _, err = run(t, "", "convert", "-s", schema, "-t", "User", "-o", "yaml", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "country: Brazil")
}

func TestConvert_InvisibleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	doc := writeFile(t, dir, "tags.json", `["a","b"]`)

	out, _, err := run(t, "", "convert", "-s", schema, "-t", "Tags", doc)
	require.NoError(t, err)
	var got []any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestSchema(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)

	out, _, err := run(t, "", "schema", "-s", schema, "-t", "User")
	require.NoError(t, err)
	var one map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &one))
	assert.Equal(t, "object", one["type"])
	assert.Equal(t, []any{"name"}, one["required"])

	out, _, err = run(t, "", "schema", "-s", schema)
	require.NoError(t, err)
	var all map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Len(t, all, 3)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	cfg := writeFile(t, dir, "config.yaml", "schema: "+schema+"\ntype: Group\noutput: yaml\nlog_level: debug\n")
	doc := writeFile(t, dir, "group.json", `{"title":"ops"}`)

	out, errOut, err := run(t, "", "convert", "-c", cfg, doc)
	require.NoError(t, err)
	assert.Equal(t, "title: ops\n", out)
	assert.Contains(t, errOut, "schema loaded")

	// flags win over the config file
	_, _, err = run(t, "", "convert", "-c", cfg, "-t", "User", doc)
	require.Error(t, err)
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	doc := writeFile(t, dir, "doc.json", `{}`)

	_, _, err := run(t, "", "validate", doc)
	assert.ErrorContains(t, err, "no schema file")

	_, _, err = run(t, "", "validate", "-s", schema, doc)
	assert.ErrorContains(t, err, "no type given")

	_, _, err = run(t, "", "validate", "-s", schema, "-t", "Nope", doc)
	assert.ErrorContains(t, err, "unknown type")

	_, _, err = run(t, "", "validate", "-s", schema, "-t", "User", "--duplicate-keys", "maybe", doc)
	assert.ErrorContains(t, err, "invalid configuration")

	_, _, err = run(t, "", "validate", "-s", schema, "-t", "User", filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "simplify version 0.1.0\n", out)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	require.NoError(t, cfg.Validate())

	_, err = loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, t.TempDir(), "bad.yaml", "output: xml\n")
	cfg, err = loadConfig(bad)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
