package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration. Values are taken from environment
// variables with the prefix "SHOWCASE_". Example: SHOWCASE_BASE_URL=...
// SHOWCASE_MAX_RETRIES=3 .
type Config struct {
	BaseURL    string        `envconfig:"BASE_URL"    default:"http://localhost:8000/projects"`
	Timeout    time.Duration `envconfig:"TIMEOUT"     default:"15s"`
	MaxRetries int           `envconfig:"MAX_RETRIES" default:"1"`
	RetryDelay time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
	// StateFile is the durable key-value store path; defaults to
	// ~/.showcase/state.json.
	StateFile string `envconfig:"STATE_FILE"`
	LogLevel  string `envconfig:"LOG_LEVEL"   default:"info"`
}

// Load populates Config from environment variables (prefix SHOWCASE_).
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("SHOWCASE", &c); err != nil {
		return nil, err
	}
	if c.StateFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.StateFile = filepath.Join(home, ".showcase", "state.json")
	}
	return &c, nil
}

// Init initializes logging from the loaded configuration.
func (c *Config) Init() {
	InitLogger()
	SetLogLevelFromString(c.LogLevel)

	log.Debug().
		Str("base_url", c.BaseURL).
		Str("state_file", c.StateFile).
		Str("log_level", c.LogLevel).
		Msg("configuration loaded")
}
