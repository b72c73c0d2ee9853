package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API        APIConfig        `yaml:"api" mapstructure:"api"`
	Wiki       WikiConfig       `yaml:"wiki" mapstructure:"wiki"`
	Checkpoint CheckpointConfig `yaml:"checkpoint" mapstructure:"checkpoint"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the species REST API fetch stages.
type APIConfig struct {
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent     string  `yaml:"user_agent" mapstructure:"user_agent"`
	MaxSpecies    int     `yaml:"max_species" mapstructure:"max_species"`
	BatchSize     int     `yaml:"batch_size" mapstructure:"batch_size"`
	FormBatchSize int     `yaml:"form_batch_size" mapstructure:"form_batch_size"`
	BatchDelayMS  int     `yaml:"batch_delay_ms" mapstructure:"batch_delay_ms"`
	MaxRetries    int     `yaml:"max_retries" mapstructure:"max_retries"`
	RetryDelayMS  int     `yaml:"retry_delay_ms" mapstructure:"retry_delay_ms"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	SpriteBaseURL string  `yaml:"sprite_base_url" mapstructure:"sprite_base_url"`
	ArtSpriteBase string  `yaml:"art_sprite_base" mapstructure:"art_sprite_base"`
	ExtSpriteBase string  `yaml:"ext_sprite_base" mapstructure:"ext_sprite_base"`
}

// WikiConfig configures the event-distribution wiki scrape.
type WikiConfig struct {
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent     string `yaml:"user_agent" mapstructure:"user_agent"`
	CacheTTLHours int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	PageDelayMS   int    `yaml:"page_delay_ms" mapstructure:"page_delay_ms"`
}

// CheckpointConfig configures the durable fetch-progress store.
type CheckpointConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver"`
	Dir          string `yaml:"dir" mapstructure:"dir"`
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
}

// OutputConfig configures where compiled artifacts are written.
type OutputConfig struct {
	Dir             string `yaml:"dir" mapstructure:"dir"`
	CorrectionsFile string `yaml:"corrections_file" mapstructure:"corrections_file"`
}

// ServerConfig configures the artifact HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DEXSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("api.user_agent", "dexsync/1.0")
	v.SetDefault("api.max_species", 1025)
	v.SetDefault("api.batch_size", 5)
	v.SetDefault("api.form_batch_size", 8)
	v.SetDefault("api.batch_delay_ms", 1200)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.retry_delay_ms", 3000)
	v.SetDefault("api.rate_per_second", 5)
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.sprite_base_url", "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/home/")
	v.SetDefault("api.art_sprite_base", "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/")
	v.SetDefault("api.ext_sprite_base", "https://www.serebii.net/pokemonhome/pokemon/80/")
	v.SetDefault("wiki.base_url", "https://wiki.52poke.com/wiki/")
	v.SetDefault("wiki.user_agent", "Mozilla/5.0 (compatible; dexsync/1.0)")
	v.SetDefault("wiki.cache_ttl_hours", 24)
	v.SetDefault("wiki.page_delay_ms", 2000)
	v.SetDefault("checkpoint.driver", "file")
	v.SetDefault("checkpoint.dir", ".cache")
	v.SetDefault("checkpoint.database_path", ".cache/checkpoint.db")
	v.SetDefault("output.dir", "public/data")
	v.SetDefault("output.corrections_file", "corrections.yaml")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a command mode depends on. Modes: "fetch"
// for the network pipeline commands, "serve" for the artifact server.
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.API.MaxSpecies < 1 {
		errs = append(errs, "api.max_species must be > 0")
	}
	if c.API.BatchSize < 1 || c.API.BatchSize > 50 {
		errs = append(errs, "api.batch_size must be between 1 and 50")
	}
	if c.API.FormBatchSize < 1 || c.API.FormBatchSize > 50 {
		errs = append(errs, "api.form_batch_size must be between 1 and 50")
	}
	switch c.Checkpoint.Driver {
	case "", "file", "sqlite":
	default:
		errs = append(errs, "checkpoint.driver must be file or sqlite")
	}

	switch mode {
	case "fetch":
		if c.API.BaseURL == "" {
			errs = append(errs, "api.base_url is required")
		}
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
