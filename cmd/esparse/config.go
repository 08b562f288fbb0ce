package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"esparse/internal/parser"
)

const configFileName = "esparse.toml"

type projectConfig struct {
	Parser parserConfig `toml:"parser"`
	Output outputConfig `toml:"output"`
}

type parserConfig struct {
	SourceType                 string `toml:"source_type"`
	Strict                     bool   `toml:"strict"`
	AllowReturnOutsideFunction bool   `toml:"allow_return_outside_function"`
	AllowHTMLComments          *bool  `toml:"allow_html_comments"`
}

type outputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
}

// findConfig walks up from startDir looking for esparse.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("parser", "source_type") {
		if _, err := parser.ParseSourceType(cfg.Parser.SourceType); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [parser].source_type: %w", path, err)
		}
	}
	switch cfg.Output.Color {
	case "", "auto", "on", "off":
	default:
		return projectConfig{}, fmt.Errorf("%s: [output].color must be auto, on or off", path)
	}
	if cfg.Output.MaxDiagnostics < 0 || cfg.Output.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [output] counts must not be negative", path)
	}
	return cfg, nil
}

// loadConfig applies esparse.toml to every flag the user did not set.
func loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		var ok bool
		path, ok, err = findConfig(".")
		if err != nil || !ok {
			return err
		}
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return err
	}
	return applyConfig(cmd, cfg)
}

func applyConfig(cmd *cobra.Command, cfg projectConfig) error {
	flags := cmd.Flags()
	values := map[string]string{}
	if cfg.Parser.SourceType != "" {
		values["source-type"] = cfg.Parser.SourceType
	}
	if cfg.Parser.Strict {
		values["strict"] = "true"
	}
	if cfg.Parser.AllowReturnOutsideFunction {
		values["allow-return-outside-function"] = "true"
	}
	if cfg.Parser.AllowHTMLComments != nil {
		values["html-comments"] = strconv.FormatBool(*cfg.Parser.AllowHTMLComments)
	}
	// Only parse shares the format names of the config file.
	if cfg.Output.Format != "" && cmd.Name() == "parse" {
		values["format"] = cfg.Output.Format
	}
	if cfg.Output.Color != "" {
		values["color"] = cfg.Output.Color
	}
	if cfg.Output.MaxDiagnostics > 0 {
		values["max-diagnostics"] = strconv.Itoa(cfg.Output.MaxDiagnostics)
	}
	if cfg.Output.Jobs > 0 {
		values["jobs"] = strconv.Itoa(cfg.Output.Jobs)
	}
	for name, value := range values {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

// parserOptions builds the parser options from the flags of cmd.
func parserOptions(cmd *cobra.Command) (parser.Options, error) {
	flags := cmd.Flags()
	var opts parser.Options
	st, err := flags.GetString("source-type")
	if err != nil {
		return opts, fmt.Errorf("failed to get source-type flag: %w", err)
	}
	if opts.SourceType, err = parser.ParseSourceType(st); err != nil {
		return opts, err
	}
	if opts.Strict, err = flags.GetBool("strict"); err != nil {
		return opts, fmt.Errorf("failed to get strict flag: %w", err)
	}
	if opts.AllowReturnOutsideFunction, err = flags.GetBool("allow-return-outside-function"); err != nil {
		return opts, fmt.Errorf("failed to get allow-return-outside-function flag: %w", err)
	}
	if flags.Lookup("html-comments") != nil {
		if opts.AllowHTMLComments, err = flags.GetBool("html-comments"); err != nil {
			return opts, fmt.Errorf("failed to get html-comments flag: %w", err)
		}
	}
	return opts, nil
}
