package model

import "time"

// Config is the complete MicroBridge configuration
type Config struct {
	Conversion  ConversionConfig  `yaml:"conversion" mapstructure:"conversion"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
}

// ConversionConfig controls how annotations are interpreted
type ConversionConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // auto, ndpa, csv
	Force  bool   `yaml:"force" mapstructure:"force"`   // Write (0, 0) for unresolvable calibration points
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`         // Empty: next to each input file
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"` // Print the full diagnostic trail
	Debug   bool   `yaml:"debug" mapstructure:"debug"`     // Print wrapped errors and stacks
	Report  string `yaml:"report" mapstructure:"report"`   // Optional JSON report path
}

// ConcurrencyConfig controls the batch workers
type ConcurrencyConfig struct {
	Workers         int           `yaml:"workers" mapstructure:"workers"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"` // Bounded wait for the in-flight file on interrupt
	ProgressPerSec  float64       `yaml:"progress_per_sec" mapstructure:"progress_per_sec"` // Shape progress events per second
}

// CacheConfig controls incremental conversion
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Conversion: ConversionConfig{
			Format: "auto",
		},
		Concurrency: ConcurrencyConfig{
			Workers:         4,
			ShutdownTimeout: 10 * time.Second,
			ProgressPerSec:  20,
		},
		Cache: CacheConfig{
			TTL: 30 * 24 * time.Hour,
		},
	}
}
