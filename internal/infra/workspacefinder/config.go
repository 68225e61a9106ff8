package workspacefinder

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joelspa/Katze/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads katzefix.yaml from the project root and applies defaults.
// A missing file is not an error: the defaults describe the Katze tree.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, DefaultConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	k := y.Katzefix
	setIf(&cfg.Marker, k.Marker)

	setIf(&cfg.Imports.Line, k.Imports.Line)
	setIf(&cfg.Imports.Prefix, k.Imports.Prefix)
	if k.Imports.Targets != nil {
		cfg.Imports.Targets = k.Imports.Targets
	}

	setIf(&cfg.URLs.Target, k.URLs.Target)
	setIf(&cfg.URLs.Anchor, k.URLs.Anchor)
	setIf(&cfg.URLs.Line, k.URLs.Line)
	setIf(&cfg.URLs.BaseURL, k.URLs.BaseURL)
	setIf(&cfg.URLs.Constant, k.URLs.Constant)

	if k.Reports.Enabled != nil {
		cfg.Reports.Enabled = *k.Reports.Enabled
	}
	if k.Reports.Index != nil {
		cfg.Reports.Index = *k.Reports.Index
	}

	setIf(&cfg.Paths.ReportsDir, k.Paths.ReportsDir)
	setIf(&cfg.Paths.LogsDir, k.Paths.LogsDir)

	if err := cfg.Validate(); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

type yamlConfig struct {
	Katzefix struct {
		Marker string `yaml:"marker"`

		Imports struct {
			Line    string   `yaml:"line"`
			Prefix  string   `yaml:"prefix"`
			Targets []string `yaml:"targets"`
		} `yaml:"imports"`

		URLs struct {
			Target   string `yaml:"target"`
			Anchor   string `yaml:"anchor"`
			Line     string `yaml:"line"`
			BaseURL  string `yaml:"base_url"`
			Constant string `yaml:"constant"`
		} `yaml:"urls"`

		Reports struct {
			Enabled *bool `yaml:"enabled"`
			Index   *bool `yaml:"index"`
		} `yaml:"reports"`

		Paths struct {
			ReportsDir string `yaml:"reports_dir"`
			LogsDir    string `yaml:"logs_dir"`
		} `yaml:"paths"`
	} `yaml:"katzefix"`
}
