package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	DataFile  string          `yaml:"data_file"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Model     ModelConfig     `yaml:"model"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig controls the HTTP and WebSocket listener.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	FrontendDir string `yaml:"frontend_dir"`
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ModelConfig controls the train/test split and how predictions are shown.
type ModelConfig struct {
	Seed         uint64  `yaml:"seed"`
	TestFraction float64 `yaml:"test_fraction"`
	Unit         string  `yaml:"unit"`
}

// DashboardConfig controls chart series sizes.
type DashboardConfig struct {
	SampleCap int `yaml:"sample_cap"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile: "household_power_consumption.txt",
		Server: ServerConfig{
			Addr:        ":8080",
			FrontendDir: "frontend/build",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "development",
		},
		Model: ModelConfig{
			Seed:         42,
			TestFraction: 0.2,
			Unit:         "kW",
		},
		Dashboard: DashboardConfig{
			SampleCap: 1000,
		},
	}
}

// DefaultConfigPath returns the default config file path (local directory).
func DefaultConfigPath() string {
	return "config.yaml"
}

// Load reads the config file over the defaults, then applies .env and
// environment overrides. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := godotenv.Load(); err != nil {
		zap.L().Debug("No .env file found, using environment variables")
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DataFile = getEnv("ENERGY_DATA_FILE", c.DataFile)
	c.Server.Addr = getEnv("ENERGY_ADDR", c.Server.Addr)
	c.Server.FrontendDir = getEnv("ENERGY_FRONTEND_DIR", c.Server.FrontendDir)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	if v, ok := os.LookupEnv("MODEL_SEED"); ok && v != "" {
		c.Model.Seed = parseUint(v, c.Model.Seed)
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data file is required")
	}
	if c.Model.TestFraction <= 0 || c.Model.TestFraction >= 1 {
		return fmt.Errorf("model.test_fraction %.3f outside (0, 1)", c.Model.TestFraction)
	}
	if c.Dashboard.SampleCap <= 0 {
		return fmt.Errorf("dashboard.sample_cap must be positive, got %d", c.Dashboard.SampleCap)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseUint(value string, fallback uint64) uint64 {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		zap.L().Warn("Failed to parse uint", zap.String("value", value), zap.Error(err))
		return fallback
	}
	return v
}
