package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

var validate = validator.New()

// Config represents the complete merger configuration. It is built
// once at startup and passed into the pipeline; nothing reads ambient
// state after that.
type Config struct {
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExtractedDir string `yaml:"extracted_dir" envconfig:"EXTRACTED_DIR" validate:"required"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
}

// ProcessingConfig bounds the fiscal-year partitions the merger looks for.
type ProcessingConfig struct {
	FirstFiscalYear int `yaml:"first_fiscal_year" envconfig:"FIRST_FISCAL_YEAR" validate:"required,min=2000"`
	LastFiscalYear  int `yaml:"last_fiscal_year" envconfig:"LAST_FISCAL_YEAR" validate:"required,gtefield=FirstFiscalYear"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load loads configuration from defaults, an optional config file, and
// environment variables, in that precedence order (env wins).
func Load() (*Config, error) {
	cfg := *Default()

	if configFile := getConfigFilePath(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg.merge(fileCfg)
	}

	if err := envconfig.Process("SPEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validateConfig(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// merge overlays non-zero values from a file config onto the defaults.
func (c *Config) merge(file *Config) {
	if file.Paths.ExtractedDir != "" {
		c.Paths.ExtractedDir = file.Paths.ExtractedDir
	}
	if file.Paths.OutputDir != "" {
		c.Paths.OutputDir = file.Paths.OutputDir
	}
	if file.Processing.FirstFiscalYear != 0 {
		c.Processing.FirstFiscalYear = file.Processing.FirstFiscalYear
	}
	if file.Processing.LastFiscalYear != 0 {
		c.Processing.LastFiscalYear = file.Processing.LastFiscalYear
	}
	if file.Logging.Level != "" {
		c.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		c.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		c.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		c.Logging.FilePath = file.Logging.FilePath
	}
}

// validateConfig normalizes logging settings and checks the rest.
func (c *Config) validateConfig() error {
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "console" && c.Logging.Output != "file" && c.Logging.Output != "both" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/merger.log"
	}

	return validate.Struct(c)
}

// FiscalYearLabels returns the partition folder names in processing
// order, e.g. FY2017 through FY2025.
func (c *Config) FiscalYearLabels() []string {
	labels := make([]string, 0, c.Processing.LastFiscalYear-c.Processing.FirstFiscalYear+1)
	for y := c.Processing.FirstFiscalYear; y <= c.Processing.LastFiscalYear; y++ {
		labels = append(labels, fmt.Sprintf("FY%d", y))
	}
	return labels
}

// CombinedFilePath returns the path of the merged parquet output.
func (c *Config) CombinedFilePath() string {
	name := fmt.Sprintf("combined_spending_%d_%d.parquet",
		c.Processing.FirstFiscalYear, c.Processing.LastFiscalYear)
	return filepath.Join(c.Paths.OutputDir, name)
}

// SummaryFilePath returns the path of the per-fiscal-year count report.
func (c *Config) SummaryFilePath() string {
	return filepath.Join(c.Paths.OutputDir, "fiscal_year_counts.csv")
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use defaults and env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			ExtractedDir: filepath.Join("backups", "extracted"),
			OutputDir:    "data",
		},
		Processing: ProcessingConfig{
			FirstFiscalYear: 2017,
			LastFiscalYear:  2025,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/merger.log",
		},
	}
}
