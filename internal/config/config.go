package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all job settings, populated from environment variables.
type Config struct {
	NowcastURL      string `env:"NOWCAST_URL" envDefault:"https://services.swpc.noaa.gov/text/aurora-nowcast-map.txt"`
	ShortHorizonDir string `env:"SHORT_HORIZON_DIR" envDefault:"30min"`
	LongHorizonDir  string `env:"LONG_HORIZON_DIR" envDefault:"3day"`
	ErrorLog        string `env:"ERROR_LOG" envDefault:"errors.log"`
	RetentionDays   int    `env:"RETENTION_DAYS" envDefault:"7"`

	ImageFormat  string  `env:"IMAGE_FORMAT" envDefault:"jpg"`
	ImagePrefix  string  `env:"IMAGE_PREFIX" envDefault:"ovona"`
	ImageDPI     int     `env:"IMAGE_DPI" envDefault:"96"`
	FigureWidth  float64 `env:"FIGURE_WIDTH_IN" envDefault:"50"`
	FigureHeight float64 `env:"FIGURE_HEIGHT_IN" envDefault:"25"`

	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Optional integrations, disabled when empty.
	PushgatewayURL string   `env:"PUSHGATEWAY_URL"`
	KafkaBrokers   []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic     string   `env:"KAFKA_TOPIC" envDefault:"aurora-images"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.ImageFormat = strings.ToLower(cfg.ImageFormat)
	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads a dotenv file into the process environment and then calls Load.
// Variables already set in the environment take precedence over the file.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("load env file %s: %w", path, err)
	}
	return Load()
}

func (c *Config) validate() error {
	if c.NowcastURL == "" {
		return errors.New("NOWCAST_URL is required")
	}
	if c.ShortHorizonDir == "" {
		return errors.New("SHORT_HORIZON_DIR is required")
	}
	if c.ErrorLog == "" {
		return errors.New("ERROR_LOG is required")
	}
	if c.RetentionDays <= 0 {
		return errors.New("RETENTION_DAYS must be positive")
	}
	switch c.ImageFormat {
	case "jpg", "jpeg", "png":
	default:
		return fmt.Errorf("IMAGE_FORMAT %q is not one of jpg, jpeg, png", c.ImageFormat)
	}
	if c.ImagePrefix == "" {
		return errors.New("IMAGE_PREFIX is required")
	}
	if c.ImageDPI <= 0 {
		return errors.New("IMAGE_DPI must be positive")
	}
	if c.FigureWidth <= 0 || c.FigureHeight <= 0 {
		return errors.New("FIGURE_WIDTH_IN and FIGURE_HEIGHT_IN must be positive")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT must be positive")
	}
	if c.KafkaEnabled() && c.KafkaTopic == "" {
		return errors.New("KAFKA_BROKERS is set but KAFKA_TOPIC is empty")
	}
	return nil
}

// MonitoredDirs returns every directory the retention sweep covers.
func (c *Config) MonitoredDirs() []string {
	dirs := []string{c.ShortHorizonDir}
	if c.LongHorizonDir != "" && c.LongHorizonDir != c.ShortHorizonDir {
		dirs = append(dirs, c.LongHorizonDir)
	}
	return dirs
}

// Retention returns the retention window as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// KafkaEnabled reports whether image notifications should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// PushEnabled reports whether metrics should be pushed after a run.
func (c *Config) PushEnabled() bool {
	return c.PushgatewayURL != ""
}

func compact(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
