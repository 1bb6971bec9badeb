// =============================================================================
// Weighing Report - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (later wins):
//   1. Built-in defaults (applyDefaults)
//   2. config.yaml
//   3. .env file and LAPORAN_* environment variables   (see cmd/root.go)
//   4. Command-line flags                              (see cmd/root.go)
//
// Layers 3 and 4 are resolved by viper in the cmd package and handed to
// ApplyOverrides as plain key/value pairs, so this package only knows YAML.
//
// EXAMPLE config.yaml:
//
//   source:
//     base_url: http://192.168.10.214:4000
//     timeout: 15s
//   session:
//     token_file: ~/.laporan/token
//   report:
//     timezone: Asia/Jakarta
//     timezone_label: WIB
//   export:
//     output_dir: ./output
//     schedule: "0 1 * * *"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config is the full application configuration.
type Config struct {
	Source       SourceConfig       `yaml:"source"`
	Session      SessionConfig      `yaml:"session"`
	Report       ReportConfig       `yaml:"report"`
	Export       ExportConfig       `yaml:"export"`
	Organization OrganizationConfig `yaml:"organization"`
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
}

// SourceConfig says where records come from. When File is set it takes
// precedence over the upstream service.
type SourceConfig struct {
	// BaseURL of the upstream weighing service.
	BaseURL string `yaml:"base_url"`

	// Path of the history endpoint.
	// Default: "/api/riwayat"
	Path string `yaml:"path"`

	// File is a local .json or .csv record file.
	File string `yaml:"file"`

	// Timeout per upstream request.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`
}

// SessionConfig holds the upstream bearer token.
type SessionConfig struct {
	Token     string `yaml:"token"`
	TokenFile string `yaml:"token_file"`
}

// ReportConfig controls how the report is displayed.
type ReportConfig struct {
	// Timezone is the IANA zone timestamps are shown in.
	// Default: "Asia/Jakarta"
	Timezone string `yaml:"timezone"`

	// TimezoneLabel is appended to every timestamp.
	// Default: "WIB"
	TimezoneLabel string `yaml:"timezone_label"`

	// PageSize for `show` and the HTTP view.
	// Valid values: 10, 25, 50, 75, 100
	// Default: 25
	PageSize int `yaml:"page_size"`
}

// ExportConfig controls export file names and the schedule.
type ExportConfig struct {
	// OutputDir receives exported documents.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// SpreadsheetName and DocumentName are the fixed file names.
	SpreadsheetName string `yaml:"spreadsheet_name"`
	DocumentName    string `yaml:"document_name"`

	// SheetName of the single spreadsheet sheet.
	// Default: "Laporan"
	SheetName string `yaml:"sheet_name"`

	// NameFormat names scheduled exports.
	// Placeholders: {name} {date} {timestamp} {uuid}
	// Default: "{name}_{date}"
	NameFormat string `yaml:"name_format"`

	// Schedule is a cron expression for the daily export in `serve`.
	// Empty disables it.
	Schedule string `yaml:"schedule"`
}

// OrganizationConfig is the PDF letterhead.
type OrganizationConfig struct {
	Name         string   `yaml:"name"`
	AddressLines []string `yaml:"address_lines"`
	Title        string   `yaml:"title"`

	// LogoFile is an optional PNG for the title block.
	LogoFile string `yaml:"logo_file"`
}

// ServerConfig configures `serve`.
type ServerConfig struct {
	// Addr to listen on.
	// Default: ":8080"
	Addr string `yaml:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format: "console" or "json"
	// Default: "console"
	Format string `yaml:"format"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the YAML file at path. A missing file is not an error; the
// defaults are used instead.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// LoadEnv loads a .env file into the process environment. An empty path
// tries ./.env; a missing file is ignored.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed loading env file %s: %w", path, err)
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Source.Path == "" {
		cfg.Source.Path = "/api/riwayat"
	}
	if cfg.Source.Timeout == 0 {
		cfg.Source.Timeout = 15 * time.Second
	}
	if cfg.Report.Timezone == "" {
		cfg.Report.Timezone = "Asia/Jakarta"
	}
	if cfg.Report.TimezoneLabel == "" {
		cfg.Report.TimezoneLabel = "WIB"
	}
	if cfg.Report.PageSize == 0 {
		cfg.Report.PageSize = 25
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = "./output"
	}
	if cfg.Export.SpreadsheetName == "" {
		cfg.Export.SpreadsheetName = "Laporan_Penimbangan.xlsx"
	}
	if cfg.Export.DocumentName == "" {
		cfg.Export.DocumentName = "Laporan_Penimbangan.pdf"
	}
	if cfg.Export.SheetName == "" {
		cfg.Export.SheetName = "Laporan"
	}
	if cfg.Export.NameFormat == "" {
		cfg.Export.NameFormat = "{name}_{date}"
	}
	if cfg.Organization.Name == "" {
		cfg.Organization.Name = "PT. INTERSKALA MANDIRI INDONESIA"
	}
	if len(cfg.Organization.AddressLines) == 0 {
		cfg.Organization.AddressLines = []string{
			"Green Sedayu Biz Park Jl. Daan Mogot KM.18, DM 12 No.62,",
			"RT.3/RW.8, Kalideres, West Jakarta City, Jakarta 11840",
			"Telp: (021) 5439-0045 | Email: sales@interskala.com",
		}
	}
	if cfg.Organization.Title == "" {
		cfg.Organization.Title = "LAPORAN PENIMBANGAN"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	cfg.Session.TokenFile = ExpandPath(cfg.Session.TokenFile)
	cfg.Organization.LogoFile = ExpandPath(cfg.Organization.LogoFile)
}

// Validate checks values that defaults cannot fix.
func (c *Config) Validate() error {
	switch c.Report.PageSize {
	case 10, 25, 50, 75, 100:
	default:
		return fmt.Errorf("report.page_size must be one of 10, 25, 50, 75, 100 (got %d)", c.Report.PageSize)
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json (got %q)", c.Log.Format)
	}
	if c.Source.File != "" {
		switch strings.ToLower(filepath.Ext(c.Source.File)) {
		case ".json", ".csv":
		default:
			return fmt.Errorf("source.file must be a .json or .csv file (got %q)", c.Source.File)
		}
	}
	return nil
}

// =============================================================================
// OVERRIDES
// =============================================================================

// OverrideKeys are the dotted keys ApplyOverrides understands.
var OverrideKeys = []string{
	"source.base_url",
	"source.file",
	"source.timeout",
	"session.token",
	"session.token_file",
	"report.timezone",
	"report.page_size",
	"export.output_dir",
	"export.schedule",
	"server.addr",
	"log.level",
	"log.format",
}

// ApplyOverrides sets every key for which lookup reports a value, then
// re-validates.
func (c *Config) ApplyOverrides(lookup func(key string) (string, bool)) error {
	for _, key := range OverrideKeys {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		if err := c.set(key, v); err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
	}
	applyDefaults(c)
	return c.Validate()
}

func (c *Config) set(key, v string) error {
	switch key {
	case "source.base_url":
		c.Source.BaseURL = v
	case "source.file":
		c.Source.File = v
	case "source.timeout":
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Source.Timeout = d
	case "session.token":
		c.Session.Token = v
	case "session.token_file":
		c.Session.TokenFile = v
	case "report.timezone":
		c.Report.Timezone = v
	case "report.page_size":
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Report.PageSize = n
	case "export.output_dir":
		c.Export.OutputDir = v
	case "export.schedule":
		c.Export.Schedule = v
	case "server.addr":
		c.Server.Addr = v
	case "log.level":
		c.Log.Level = v
	case "log.format":
		c.Log.Format = v
	default:
		return fmt.Errorf("unknown key")
	}
	return nil
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
