package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr  string `mapstructure:"SERVER_ADDR"`
	MetricsAddr string `mapstructure:"METRICS_ADDR"`
	IsDev       bool   `mapstructure:"IS_DEV"`

	FetchTimeout time.Duration `mapstructure:"FETCH_TIMEOUT"`
	UserAgent    string        `mapstructure:"USER_AGENT"`

	UseGPTRecommendations  bool          `mapstructure:"USE_GPT_RECOMMENDATIONS"`
	OpenAIAPIKey           string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL          string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel            string        `mapstructure:"OPENAI_MODEL"`
	RecommendationTimeout  time.Duration `mapstructure:"RECOMMENDATION_TIMEOUT"`
	RecommendationCacheTTL time.Duration `mapstructure:"RECOMMENDATION_CACHE_TTL"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	BasicAuthUser     string `mapstructure:"BASIC_AUTH_USER"`
	BasicAuthPass     string `mapstructure:"BASIC_AUTH_PASS"`
	CORSAllowedOrigin string `mapstructure:"CORS_ALLOWED_ORIGIN"`
}

var AppConfig *Config

// HasBasicAuth reports whether both basic auth credentials are configured.
func (c *Config) HasBasicAuth() bool {
	return c.BasicAuthUser != "" && c.BasicAuthPass != ""
}

// HasOpenAIKey reports whether the configured key looks like an OpenAI secret.
func (c *Config) HasOpenAIKey() bool {
	return strings.HasPrefix(c.OpenAIAPIKey, "sk-")
}

// LoadEnv reads an optional env file followed by the process environment.
// A missing file is not an error; an unreadable one is.
func LoadEnv(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	AppConfig = &cfg
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(SERVER_ADDR, ":8080")
	v.SetDefault(METRICS_ADDR, ":8081")
	v.SetDefault(IS_DEV, false)
	v.SetDefault(FETCH_TIMEOUT, 30*time.Second)
	v.SetDefault(USER_AGENT, "SEOAnalyzer/1.0")
	v.SetDefault(USE_GPT_RECOMMENDATIONS, true)
	v.SetDefault(OPENAI_API_KEY, "")
	v.SetDefault(OPENAI_BASE_URL, "https://api.openai.com/v1")
	v.SetDefault(OPENAI_MODEL, "gpt-3.5-turbo")
	v.SetDefault(RECOMMENDATION_TIMEOUT, 30*time.Second)
	v.SetDefault(RECOMMENDATION_CACHE_TTL, time.Hour)
	v.SetDefault(RATE_LIMIT_RPS, 1.0)
	v.SetDefault(RATE_LIMIT_BURST, 3)
	v.SetDefault(BASIC_AUTH_USER, "")
	v.SetDefault(BASIC_AUTH_PASS, "")
	v.SetDefault(CORS_ALLOWED_ORIGIN, "*")
}

func (c *Config) validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%s must be positive", FETCH_TIMEOUT)
	}
	if c.RecommendationTimeout <= 0 {
		return fmt.Errorf("%s must be positive", RECOMMENDATION_TIMEOUT)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%s and %s must be positive", RATE_LIMIT_RPS, RATE_LIMIT_BURST)
	}
	if (c.BasicAuthUser == "") != (c.BasicAuthPass == "") {
		return fmt.Errorf("%s and %s must be set together", BASIC_AUTH_USER, BASIC_AUTH_PASS)
	}
	return nil
}
