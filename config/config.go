package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opslock/weeklock/smartsheet"
)

// TokenPlaceholder is the documented stand-in for an unconfigured API token.
// It is not a valid credential.
const TokenPlaceholder = "YOUR_SMARTSHEET_API_TOKEN_HERE"

// Duration is a time.Duration that unmarshals from YAML strings like '60s'
// or '500ms'.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration '%s' (%v)", s, err)
	}

	*d = Duration(v)

	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config carries every setting used by the locking pipeline. It is built
// once at startup and passed explicitly into each component.
type Config struct {
	Token      string   `yaml:"token"`
	Sheets     []string `yaml:"sheets"`
	Column     string   `yaml:"column"`
	Timezone   string   `yaml:"timezone"`
	BatchSize  int      `yaml:"batch-size"`
	Workers    int      `yaml:"workers"`
	Timeout    Duration `yaml:"timeout"`
	Retries    int      `yaml:"retries"`
	Backoff    Duration `yaml:"backoff"`
	BatchDelay Duration `yaml:"batch-delay"`
	BaseURL    string   `yaml:"base-url"`
	LogFile    string   `yaml:"log-file"`
	Metrics    string   `yaml:"metrics"`
}

// NewConfig returns a Config with the application defaults.
func NewConfig() Config {
	return Config{
		Token:      TokenPlaceholder,
		Sheets:     []string{},
		Column:     "Weekly Reference Logged Date",
		Timezone:   "America/Chicago",
		BatchSize:  25,
		Workers:    2,
		Timeout:    Duration(60 * time.Second),
		Retries:    3,
		Backoff:    Duration(1 * time.Second),
		BatchDelay: Duration(500 * time.Millisecond),
		BaseURL:    smartsheet.DefaultBaseURL,
		LogFile:    "locked_rows_log.csv",
		Metrics:    "",
	}
}

// Load reads the configuration file (if it exists) over the defaults and
// then applies any environment variable overrides.
func Load(file string) (Config, error) {
	cfg := NewConfig()

	if file != "" {
		bytes, err := os.ReadFile(file)
		if err != nil && !os.IsNotExist(err) {
			return cfg, err
		} else if err == nil {
			if err := yaml.Unmarshal(bytes, &cfg); err != nil {
				return cfg, fmt.Errorf("invalid configuration file %s (%v)", file, err)
			}
		}
	}

	cfg.environment()

	return cfg, nil
}

// environment overrides settings from the process environment. The API
// token in particular is normally supplied as SMARTSHEET_API_TOKEN rather
// than stored in the configuration file.
func (c *Config) environment() {
	if v := os.Getenv("SMARTSHEET_API_TOKEN"); v != "" {
		c.Token = v
	}

	if v := os.Getenv("WEEKLOCK_SHEETS"); v != "" {
		sheets := []string{}
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				sheets = append(sheets, id)
			}
		}
		c.Sheets = sheets
	}

	if v := os.Getenv("WEEKLOCK_COLUMN"); v != "" {
		c.Column = v
	}

	if v := os.Getenv("WEEKLOCK_TIMEZONE"); v != "" {
		c.Timezone = v
	}

	if v := os.Getenv("WEEKLOCK_BASE_URL"); v != "" {
		c.BaseURL = v
	}

	if v := os.Getenv("WEEKLOCK_LOG_FILE"); v != "" {
		c.LogFile = v
	}

	if v := os.Getenv("WEEKLOCK_BATCH_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			c.BatchSize = size
		}
	}

	if v := os.Getenv("WEEKLOCK_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			c.Workers = workers
		}
	}
}

// Validate checks the configuration for values the pipeline cannot work
// with.
func (c Config) Validate() error {
	if len(c.Sheets) == 0 {
		return fmt.Errorf("no sheets configured")
	}

	if strings.TrimSpace(c.Column) == "" {
		return fmt.Errorf("no week-ending column configured")
	}

	if c.BatchSize < 1 {
		return fmt.Errorf("invalid batch size %d", c.BatchSize)
	}

	if c.Workers < 1 {
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}

	if c.Retries < 1 {
		return fmt.Errorf("invalid retry count %d", c.Retries)
	}

	return nil
}

// Location resolves the configured civil timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
