// backend/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gewnthar/greenskies/backend/emissions"
)

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeoutStr  string        `yaml:"read_timeout"`
	WriteTimeoutStr string        `yaml:"write_timeout"`
	ReadTimeout     time.Duration `yaml:"-"` // Parsed duration
	WriteTimeout    time.Duration `yaml:"-"`
}

type DataFilesConfig struct {
	EmissionFactors string `yaml:"emission_factors"`
	Airports        string `yaml:"airports"`
	History         string `yaml:"history"`
}

// InputConfig holds product-level limits applied to caller input before it
// reaches the estimator. The estimator itself accepts SAF blends up to 100%.
type InputConfig struct {
	MaxSAFBlendPercent int `yaml:"max_saf_blend_percent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type Config struct {
	Server    ServerConfig        `yaml:"server"`
	DataFiles DataFilesConfig     `yaml:"data_files"`
	Emissions emissions.Constants `yaml:"emissions"`
	Input     InputConfig         `yaml:"input"`
	Logging   LoggingConfig       `yaml:"logging"`
}

// Default returns the configuration used when no file overrides a value.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeoutStr:  "10s",
			WriteTimeoutStr: "30s",
		},
		DataFiles: DataFilesConfig{
			EmissionFactors: "emission_factors_extended.csv",
			Airports:        "airports_extended.csv",
			History:         "history.csv",
		},
		Emissions: emissions.DefaultConstants(),
		Input:     InputConfig{MaxSAFBlendPercent: 100},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// Environment overrides, applied after the YAML file.
const (
	EnvPort            = "GREENSKIES_PORT"
	EnvEmissionFactors = "GREENSKIES_EMISSION_FACTORS_CSV"
	EnvAirports        = "GREENSKIES_AIRPORTS_CSV"
	EnvHistory         = "GREENSKIES_HISTORY_CSV"
	EnvMaxSAF          = "GREENSKIES_MAX_SAF_PCT"
	EnvLogLevel        = "GREENSKIES_LOG_LEVEL"
	EnvLogFormat       = "GREENSKIES_LOG_FORMAT"
)

// LoadConfig is LoadConfigFrom with the .env file of the working directory.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigFrom(configPath, ".env")
}

// LoadConfigFrom builds a Config from defaults, then the YAML file at
// configPath, then environment variables. Variables in envFile are loaded
// into the process environment first without overriding ones already set.
// An empty configPath searches the usual locations and falls back to defaults.
func LoadConfigFrom(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := Default()

	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",        // If running from backend/config/
			"config/config.yaml", // If running from backend/
			"./backend/config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDuration(cfg.Server.ReadTimeoutStr, 10*time.Second); err != nil {
		return nil, fmt.Errorf("failed to parse server.read_timeout: %w", err)
	}
	if cfg.Server.WriteTimeout, err = parseDuration(cfg.Server.WriteTimeoutStr, 30*time.Second); err != nil {
		return nil, fmt.Errorf("failed to parse server.write_timeout: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// The ledger is created lazily, but its directory has to exist.
	if dir := filepath.Dir(cfg.DataFiles.History); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for history CSV: %w", err)
		}
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString(EnvPort, &c.Server.Port)
	setString(EnvEmissionFactors, &c.DataFiles.EmissionFactors)
	setString(EnvAirports, &c.DataFiles.Airports)
	setString(EnvHistory, &c.DataFiles.History)
	setString(EnvLogLevel, &c.Logging.Level)
	setString(EnvLogFormat, &c.Logging.Format)

	if v, ok := os.LookupEnv(EnvMaxSAF); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxSAF, v, err)
		}
		c.Input.MaxSAFBlendPercent = n
	}
	return nil
}

// Validate checks cross-field constraints after all sources are merged.
func (c *Config) Validate() error {
	if c.DataFiles.EmissionFactors == "" || c.DataFiles.Airports == "" || c.DataFiles.History == "" {
		return errors.New("data_files.emission_factors, data_files.airports and data_files.history must all be set")
	}
	if c.Input.MaxSAFBlendPercent < 0 || c.Input.MaxSAFBlendPercent > 100 {
		return fmt.Errorf("input.max_saf_blend_percent must be within 0-100, got %d", c.Input.MaxSAFBlendPercent)
	}
	if err := c.Emissions.Validate(); err != nil {
		return err
	}
	return nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
