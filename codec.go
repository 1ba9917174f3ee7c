package simplify

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/simplify/i18n"
	eng "github.com/reoring/simplify/internal/engine"
)

// FromJSON decodes a JSON document and constructs an instance of t from it.
// Numbers are kept as json.Number. Duplicate object keys are reported
// according to opt.OnDuplicateKey.
func FromJSON(t *Type, data []byte, opt DecodeOpt) (*Instance, error) {
	if opt.OnDuplicateKey != Ignore {
		dups, err := DetectJSONDuplicateKeys(data, opt.OnDuplicateKey, -1)
		if err != nil {
			return nil, err
		}
		if len(dups) > 0 {
			if opt.OnDuplicateKey == Error {
				return nil, dups
			}
			if opt.Warnings != nil {
				for _, it := range dups {
					opt.Warnings(it)
				}
			}
		}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, parseIssue(err)
	}
	if off := dec.InputOffset(); off < int64(len(data)) && len(bytes.TrimSpace(data[off:])) > 0 {
		return nil, parseIssue(fmt.Errorf("unexpected data after top-level value at offset %d", off))
	}
	return FromValue(t, v)
}

// FromYAML decodes a YAML document and constructs an instance of t from it.
func FromYAML(t *Type, data []byte) (*Instance, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, parseIssue(err)
	}
	return FromValue(t, NormalizeKeys(v, nil))
}

func parseIssue(err error) Issues {
	return Issues{Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: err.Error(), Cause: err}}
}

// ToYAML encodes ToMap() as YAML.
func (i *Instance) ToYAML() ([]byte, error) { return yaml.Marshal(i.ToMap()) }

// Bind copies the serialized form of the instance into a Go value of type T
// using JSON field mapping.
func Bind[T any](i *Instance) (T, error) {
	var out T
	b, err := i.ToJSON()
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("simplify: bind %s: %w", i.typ.name, err)
	}
	return out, nil
}

// DetectJSONDuplicateKeys reports duplicate object keys in a JSON document.
// maxIssues < 0 means unlimited; 0 disables reporting.
func DetectJSONDuplicateKeys(data []byte, severity Severity, maxIssues int) (Issues, error) {
	si, err := eng.DetectJSONDuplicateKeysBytes(data, toEngineDup(severity), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromEngineIssues(si), nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func fromEngineIssues(si []eng.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: s.Path, Message: s.Message})
	}
	return iss
}
