package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/wordcheck/internal/dictionary"
	"github.com/at-ishikawa/wordcheck/internal/dictionary/wiktionary"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Wiktionary WiktionaryConfig `mapstructure:"wiktionary"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
}

type ServerConfig struct {
	Port              int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS              CORSConfig `mapstructure:"cors"`
	ShutdownTimeoutMs int        `mapstructure:"shutdown_timeout_ms" validate:"min=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,origin"`
}

type WiktionaryConfig struct {
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
	UserAgent string `mapstructure:"user_agent" validate:"required"`
	TimeoutMs int    `mapstructure:"timeout_ms" validate:"min=0"`
}

// PipelineConfig is read once at startup; durations are in milliseconds.
type PipelineConfig struct {
	RequestIntervalMs int `mapstructure:"request_interval_ms" validate:"min=0"`
	MaxRetries        int `mapstructure:"max_retries" validate:"min=0,max=20"`
	RetryDelayMs      int `mapstructure:"retry_delay_ms" validate:"min=0"`
	CacheLifetimeMs   int `mapstructure:"cache_lifetime_ms" validate:"min=1"`
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

func (c WiktionaryConfig) ClientConfig() wiktionary.Config {
	return wiktionary.Config{
		BaseURL:   c.BaseURL,
		UserAgent: c.UserAgent,
		Timeout:   time.Duration(c.TimeoutMs) * time.Millisecond,
	}
}

func (c PipelineConfig) ServiceConfig() dictionary.PipelineConfig {
	return dictionary.PipelineConfig{
		RequestInterval: time.Duration(c.RequestIntervalMs) * time.Millisecond,
		MaxRetries:      uint(c.MaxRetries),
		RetryDelay:      time.Duration(c.RetryDelayMs) * time.Millisecond,
		CacheLifetime:   time.Duration(c.CacheLifetimeMs) * time.Millisecond,
	}
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordcheck")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_ms", 5000)
	v.SetDefault("wiktionary.base_url", wiktionary.DefaultBaseURL)
	v.SetDefault("wiktionary.user_agent", wiktionary.DefaultUserAgent)
	v.SetDefault("wiktionary.timeout_ms", 30000)
	v.SetDefault("pipeline.request_interval_ms", dictionary.DefaultRequestInterval.Milliseconds())
	v.SetDefault("pipeline.max_retries", dictionary.DefaultMaxRetries)
	v.SetDefault("pipeline.retry_delay_ms", dictionary.DefaultRetryDelay.Milliseconds())
	v.SetDefault("pipeline.cache_lifetime_ms", dictionary.DefaultCacheLifetime.Milliseconds())

	if err := v.BindEnv("server.port", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PORT environment variable: %w", err)
	}
	if err := v.BindEnv("wiktionary.base_url", "WIKTIONARY_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind WIKTIONARY_BASE_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
