package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the entire application configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Download DownloadConfig `mapstructure:"download"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Manifest ManifestConfig `mapstructure:"manifest"`
}

// InputConfig locates the photo-links batch files
type InputConfig struct {
	Dir         string `mapstructure:"dir"`
	BatchSuffix string `mapstructure:"batch_suffix"`
}

// OutputConfig contains destination settings
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// DownloadConfig tunes the download engine
type DownloadConfig struct {
	Workers       int    `mapstructure:"workers"`
	MaxRetries    int    `mapstructure:"max_retries"`
	FetchTimeout  string `mapstructure:"fetch_timeout"`
	MinStartDelay string `mapstructure:"min_start_delay"`
	MaxStartDelay string `mapstructure:"max_start_delay"`
	GdownPath     string `mapstructure:"gdown_path"`
	AutoInstall   bool   `mapstructure:"auto_install"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ManifestConfig controls the download history database
type ManifestConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load loads configuration from the specified file path. An empty path
// uses defaults only.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("input.dir", ".")
	v.SetDefault("input.batch_suffix", "-photo-links.csv")
	v.SetDefault("output.dir", "photos")
	v.SetDefault("download.workers", 3)
	v.SetDefault("download.max_retries", 3)
	v.SetDefault("download.fetch_timeout", "90s")
	v.SetDefault("download.min_start_delay", "500ms")
	v.SetDefault("download.max_start_delay", "2s")
	v.SetDefault("download.gdown_path", "gdown")
	v.SetDefault("download.auto_install", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("manifest.enabled", true)
	v.SetDefault("manifest.path", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return fmt.Errorf("input.dir is required")
	}
	if c.Input.BatchSuffix == "" {
		return fmt.Errorf("input.batch_suffix is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}

	if c.Download.Workers < 1 || c.Download.Workers > 10 {
		return fmt.Errorf("download.workers must be between 1 and 10")
	}
	if c.Download.MaxRetries < 1 || c.Download.MaxRetries > 10 {
		return fmt.Errorf("download.max_retries must be between 1 and 10")
	}

	if _, err := time.ParseDuration(c.Download.FetchTimeout); err != nil {
		return fmt.Errorf("invalid download.fetch_timeout: %w", err)
	}
	minDelay, err := time.ParseDuration(c.Download.MinStartDelay)
	if err != nil {
		return fmt.Errorf("invalid download.min_start_delay: %w", err)
	}
	maxDelay, err := time.ParseDuration(c.Download.MaxStartDelay)
	if err != nil {
		return fmt.Errorf("invalid download.max_start_delay: %w", err)
	}
	if maxDelay < minDelay {
		return fmt.Errorf("download.max_start_delay must not be less than download.min_start_delay")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetFetchTimeout returns the per-attempt timeout as time.Duration
func (c *DownloadConfig) GetFetchTimeout() time.Duration {
	d, _ := time.ParseDuration(c.FetchTimeout)
	if d == 0 {
		return 90 * time.Second
	}
	return d
}

// GetMinStartDelay returns the lower jitter bound as time.Duration
func (c *DownloadConfig) GetMinStartDelay() time.Duration {
	d, _ := time.ParseDuration(c.MinStartDelay)
	return d
}

// GetMaxStartDelay returns the upper jitter bound as time.Duration
func (c *DownloadConfig) GetMaxStartDelay() time.Duration {
	d, _ := time.ParseDuration(c.MaxStartDelay)
	return d
}
