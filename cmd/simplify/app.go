package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	simplify "github.com/reoring/simplify"
	"github.com/reoring/simplify/i18n"
	"github.com/reoring/simplify/schemafile"
)

// errValidationFailed is returned when at least one document is rejected.
var errValidationFailed = errors.New("validation failed")

type app struct {
	cfg     Config
	log     zerolog.Logger
	catalog *simplify.Catalog
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		flags      Config
	)
	a := &app{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Build, validate and convert documents against run-time object schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			overrideFromFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			a.cfg = cfg
			a.log = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			i18n.SetLanguage(cfg.Language)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVarP(&flags.Schema, "schema", "s", "", "Schema definition file (YAML or JSON)")
	pf.StringVarP(&flags.Type, "type", "t", "", "Type to build documents as")
	pf.StringVar(&flags.Language, "lang", "en", "Message language (en, ja)")
	pf.StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.DuplicateKeys, "duplicate-keys", "ignore", "Duplicate JSON keys (ignore, warn, error)")

	cmd.AddCommand(validateCmd(a), convertCmd(a), schemaCmd(a))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func overrideFromFlags(cmd *cobra.Command, cfg *Config, flags Config) {
	pf := cmd.Flags()
	if pf.Changed("schema") {
		cfg.Schema = flags.Schema
	}
	if pf.Changed("type") {
		cfg.Type = flags.Type
	}
	if pf.Changed("lang") {
		cfg.Language = flags.Language
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if pf.Changed("duplicate-keys") {
		cfg.DuplicateKeys = flags.DuplicateKeys
	}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(lvl).With().Timestamp().Logger()
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Build each document and report unmet constraints",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := a.targetType()
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				inst, err := a.build(cmd, typ, path)
				if err == nil {
					err = inst.Validate()
				}
				if err != nil {
					failed++
					a.report(cmd.OutOrStdout(), path, err)
					continue
				}
				a.log.Debug().Str("file", path).Strs("keys", inst.Keys()).Msg("document valid")
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			a.log.Info().Int("documents", len(args)).Int("failed", failed).Msg("validation finished")
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d document(s)", errValidationFailed, failed, len(args))
			}
			return nil
		},
	}
}

func convertCmd(a *app) *cobra.Command {
	var (
		output string
		dump   bool
	)
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Build a document and print its serialized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := a.targetType()
			if err != nil {
				return err
			}
			inst, err := a.build(cmd, typ, args[0])
			if err != nil {
				a.report(cmd.ErrOrStderr(), args[0], err)
				return fmt.Errorf("%w: %s", errValidationFailed, args[0])
			}
			if dump {
				fmt.Fprint(cmd.ErrOrStderr(), spew.Sdump(inst.ToMap()))
			}
			format := a.cfg.Output
			if cmd.Flags().Changed("output") {
				format = output
			}
			var out []byte
			switch strings.ToLower(format) {
			case "yaml":
				out, err = inst.ToYAML()
			case "json":
				out, err = json.MarshalIndent(inst.ToMap(), "", "  ")
				out = append(out, '\n')
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the serialized value tree to stderr")
	return cmd
}

func schemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the selected type, or of every declared type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadCatalog(); err != nil {
				return err
			}
			names := a.catalog.Names()
			if a.cfg.Type != "" {
				names = []string{a.cfg.Type}
			}
			out := map[string]any{}
			for _, n := range names {
				t, ok := a.catalog.Lookup(n)
				if !ok {
					return fmt.Errorf("unknown type %q", n)
				}
				s, err := t.JSONSchema()
				if err != nil {
					return fmt.Errorf("schema %s: %w", n, err)
				}
				out[n] = s
			}
			var v any = out
			if a.cfg.Type != "" {
				v = out[a.cfg.Type]
			}
			b, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return err
		},
	}
}

func (a *app) loadCatalog() error {
	if a.catalog != nil {
		return nil
	}
	if a.cfg.Schema == "" {
		return errors.New("no schema file given (--schema or config 'schema')")
	}
	cat := simplify.NewCatalog()
	types, err := schemafile.LoadFile(a.cfg.Schema, cat)
	if err != nil {
		return err
	}
	a.log.Debug().Str("schema", a.cfg.Schema).Int("types", len(types)).Msg("schema loaded")
	a.catalog = cat
	return nil
}

func (a *app) targetType() (*simplify.Type, error) {
	if err := a.loadCatalog(); err != nil {
		return nil, err
	}
	if a.cfg.Type == "" {
		return nil, errors.New("no type given (--type or config 'type')")
	}
	t, ok := a.catalog.Lookup(a.cfg.Type)
	if !ok {
		return nil, fmt.Errorf("unknown type %q (declared: %s)", a.cfg.Type, strings.Join(a.catalog.Names(), ", "))
	}
	return t, nil
}

// build reads path ("-" for stdin) and constructs an instance. JSON is
// detected by a leading '{' or '['; anything else is read as YAML.
func (a *app) build(cmd *cobra.Command, t *simplify.Type, path string) (*simplify.Instance, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return simplify.FromJSON(t, data, simplify.DecodeOpt{
			OnDuplicateKey: a.cfg.duplicateSeverity(),
			Warnings: func(it simplify.Issue) {
				a.log.Warn().Str("file", path).Str("path", it.Path).Str("code", it.Code).Msg(it.Message)
			},
		})
	}
	return simplify.FromYAML(t, data)
}

func (a *app) report(w io.Writer, path string, err error) {
	iss, ok := simplify.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(w, "%s: %s at %s: %s\n", path, it.Code, it.Path, it.Message)
	}
}
