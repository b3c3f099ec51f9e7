package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "ForwardWidgets/1.0.0"

// DefaultTMDBBaseURL is the TMDB API v3 root.
const DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s"
	UserAgent             string `mapstructure:"user_agent"`
	LogLevel              string `mapstructure:"log_level"`

	TMDB struct {
		APIKey   string `mapstructure:"api_key"`
		BaseURL  string `mapstructure:"base_url"`
		Language string `mapstructure:"language"` // default language for lookups, e.g. "en-US"
	} `mapstructure:"tmdb"`

	MDBList struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"mdblist"`

	Trakt struct {
		ClientID string `mapstructure:"client_id"`
		BaseURL  string `mapstructure:"base_url"`
	} `mapstructure:"trakt"`

	Stremio struct {
		BaseURL string `mapstructure:"base_url"` // AIO addon base, without /manifest.json
	} `mapstructure:"stremio"`

	IntroDB struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"introdb"`

	Server struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`

	Cache struct {
		Provider      string `mapstructure:"provider"` // "memory" or "redis"
		Size          int    `mapstructure:"size"`
		TTL           string `mapstructure:"ttl"` // Go duration string like "6h"
		RedisAddress  string `mapstructure:"redis_address"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
	} `mapstructure:"cache"`

	Enrich struct {
		// BatchSize caps intra-chunk concurrency for multi-catalog views.
		// Zero means full fan-out.
		BatchSize int `mapstructure:"batch_size"`
		// MaxItems truncates raw lists before enrichment in merged views.
		// Zero means no truncation.
		MaxItems int `mapstructure:"max_items"`
	} `mapstructure:"enrich"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	// Update logger with the configured level
	logger = logger.Level(level)

	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("tmdb.api_key", "TMDB_API_KEY")
	_ = viper.BindEnv("mdblist.api_key", "MDBLIST_API_KEY")
	_ = viper.BindEnv("trakt.client_id", "TRAKT_CLIENT_ID")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.address", "")
	viper.SetDefault("metrics.port", 9090)
	viper.SetDefault("tmdb.base_url", DefaultTMDBBaseURL)
	viper.SetDefault("tmdb.language", "en-US")
	viper.SetDefault("mdblist.base_url", "https://api.mdblist.com")
	viper.SetDefault("trakt.base_url", "https://api.trakt.tv")
	viper.SetDefault("introdb.base_url", "https://api.introdb.app")
	viper.SetDefault("cache.provider", "memory")
	viper.SetDefault("cache.size", 4096)
	viper.SetDefault("cache.ttl", "6h")
	viper.SetDefault("enrich.batch_size", 5)
	viper.SetDefault("enrich.max_items", 50)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

// CacheTTL parses the configured cache TTL, defaulting to 6 hours when the
// value is missing or malformed.
func (c *Config) CacheTTL() time.Duration {
	if d, err := time.ParseDuration(c.Cache.TTL); err == nil && d > 0 {
		return d
	}
	return 6 * time.Hour
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
