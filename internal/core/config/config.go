package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBaseDir is where jump files live in production
const DefaultBaseDir = "/mobileye/DC/Voice_Tagging/"

// DefaultReportTemplate renders a dataset summary as plain text
const DefaultReportTemplate = `DATACO-{{dataset}}
================
Files:      {{total_files}} ({{processed_files}} processed, {{failed_files}} failed)
Projects:   {{project_count}}
Sessions:   {{session_count}}
Events:     {{event_count}}
Tags:       {{unique_tags}} unique
{{#has_dates}}Recorded:   {{min_date}} to {{max_date}} (newest {{newest_age}})
{{/has_dates}}
Tag counts:
{{#tags}}  {{name}}: {{count}}
{{/tags}}`

type Config struct {
	BaseDir        string
	DBPath         string
	MaxWorkers     int // 0 = derive from CPU count
	ReportTemplate string
}

type tomlConfig struct {
	BaseDir    string `toml:"base_dir"`
	DBPath     string `toml:"db_path"`
	MaxWorkers int    `toml:"max_workers"`
}

// Load reads config from ~/.config/jumpstat/, falling back to
// defaults when files are absent.
func Load() (*Config, error) {
	cfg := &Config{
		BaseDir:        DefaultBaseDir,
		ReportTemplate: DefaultReportTemplate,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}

	configDir := filepath.Join(home, ".config", "jumpstat")
	cfg.DBPath = filepath.Join(configDir, "scans.db")

	tomlPath := filepath.Join(configDir, "config.toml")
	templatePath := filepath.Join(configDir, "report_template.txt")

	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.BaseDir != "" {
				cfg.BaseDir = tc.BaseDir
			}
			if tc.DBPath != "" {
				cfg.DBPath = tc.DBPath
			}
			cfg.MaxWorkers = tc.MaxWorkers
		}
	}

	// If custom report template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.ReportTemplate = string(data)
	}

	return cfg, nil
}
