package domain

import (
	"fmt"
	"strings"
)

// Config represents the katzefix configuration loaded from katzefix.yaml.
type Config struct {
	Marker  string
	Imports ImportsConfig
	URLs    URLsConfig
	Reports ReportsConfig
	Paths   PathsConfig
}

type ImportsConfig struct {
	// Line is inserted after the last line starting with Prefix.
	Line    string
	Prefix  string
	Targets []string
}

type URLsConfig struct {
	Target   string
	Anchor   string
	Line     string
	BaseURL  string
	Constant string
}

type ReportsConfig struct {
	Enabled bool
	Index   bool
}

type PathsConfig struct {
	ReportsDir string
	LogsDir    string
}

// DefaultConfig mirrors the files the Katze frontend needed patched when
// API_BASE_URL was introduced.
func DefaultConfig() Config {
	return Config{
		Marker: "API_BASE_URL",
		Imports: ImportsConfig{
			Line:   "import { API_BASE_URL } from '../config/api';",
			Prefix: "import ",
			Targets: []string{
				"frontend/src/pages/Profile.tsx",
				"frontend/src/pages/PublishCat.tsx",
				"frontend/src/pages/RescuerDashboard.tsx",
				"frontend/src/pages/Statistics.tsx",
				"frontend/src/pages/TrackingDashboard.tsx",
			},
		},
		URLs: URLsConfig{
			Target:   "frontend/src/pages/AdminDashboard.tsx",
			Anchor:   "import { useAuth } from '../context/AuthContext';",
			Line:     "import { API_BASE_URL } from '../config/api';",
			BaseURL:  "http://localhost:5000",
			Constant: "API_BASE_URL",
		},
		Reports: ReportsConfig{
			Enabled: false,
			Index:   true,
		},
		Paths: PathsConfig{
			ReportsDir: ".katzefix/reports",
			LogsDir:    ".katzefix/logs",
		},
	}
}

// Validate reports the first empty required field.
func (c Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"marker", c.Marker},
		{"imports.line", c.Imports.Line},
		{"imports.prefix", c.Imports.Prefix},
		{"urls.target", c.URLs.Target},
		{"urls.anchor", c.URLs.Anchor},
		{"urls.line", c.URLs.Line},
		{"urls.base_url", c.URLs.BaseURL},
		{"urls.constant", c.URLs.Constant},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("field %s: must not be empty: %w", r.field, ErrInvalidConfig)
		}
	}

	if len(c.Imports.Targets) == 0 {
		return fmt.Errorf("field imports.targets: at least one target is required: %w", ErrInvalidConfig)
	}
	for i, t := range c.Imports.Targets {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("field imports.targets[%d]: must not be empty: %w", i, ErrInvalidConfig)
		}
	}
	if strings.ContainsAny(c.Imports.Line, "\r\n") || strings.ContainsAny(c.URLs.Line, "\r\n") {
		return fmt.Errorf("import lines must be a single line: %w", ErrInvalidConfig)
	}
	return nil
}
