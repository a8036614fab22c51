package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	LeadsStream    string `mapstructure:"LEADS_STREAM"`
	LeadsLimit     int    `mapstructure:"LEADS_LIMIT"`
	RecorderBuffer int    `mapstructure:"RECORDER_BUFFER"`

	TerritoryFile string `mapstructure:"TERRITORY_FILE"`
	RosterFile    string `mapstructure:"ROSTER_FILE"`
	LocaleFile    string `mapstructure:"LOCALE_FILE"`

	NLUURL          string        `mapstructure:"NLU_URL"`
	NLUAPIKey       string        `mapstructure:"NLU_API_KEY"`
	NLUMock         bool          `mapstructure:"NLU_MOCK"`
	NLUTimeout      time.Duration `mapstructure:"NLU_TIMEOUT"`
	NLUKeywordLimit int           `mapstructure:"NLU_KEYWORD_LIMIT"`

	GeneratorBaseURL   string        `mapstructure:"GENERATOR_BASE_URL"`
	GeneratorModel     string        `mapstructure:"GENERATOR_MODEL"`
	GeneratorAPIKey    string        `mapstructure:"GENERATOR_API_KEY"`
	GeneratorMock      bool          `mapstructure:"GENERATOR_MOCK"`
	GeneratorTimeout   time.Duration `mapstructure:"GENERATOR_TIMEOUT"`
	GeneratorMaxTokens int           `mapstructure:"GENERATOR_MAX_TOKENS"`
	GeneratorRPS       float64       `mapstructure:"GENERATOR_RPS"`
	GeneratorCacheTTL  time.Duration `mapstructure:"GENERATOR_CACHE_TTL"`
}

var defaults = map[string]any{
	"ENV":                  "dev",
	"PORT":                 "8080",
	"LOG_LEVEL":            "info",
	"CORS_ALLOWED_ORIGINS": "*",
	"REQUEST_TIMEOUT":      "30s",
	"DATABASE_URL":         "",
	"REDIS_URL":            "",
	"LEADS_STREAM":         "dispatch:leads",
	"LEADS_LIMIT":          50,
	"RECORDER_BUFFER":      256,
	"TERRITORY_FILE":       "",
	"ROSTER_FILE":          "",
	"LOCALE_FILE":          "",
	"NLU_URL":              "",
	"NLU_API_KEY":          "",
	"NLU_MOCK":             false,
	"NLU_TIMEOUT":          "8s",
	"NLU_KEYWORD_LIMIT":    8,
	"GENERATOR_BASE_URL":   "",
	"GENERATOR_MODEL":      "",
	"GENERATOR_API_KEY":    "",
	"GENERATOR_MOCK":       false,
	"GENERATOR_TIMEOUT":    "20s",
	"GENERATOR_MAX_TOKENS": 90,
	"GENERATOR_RPS":        2.0,
	"GENERATOR_CACHE_TTL":  "60s",
}

func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile reads an env-style file when present, then the environment.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) AnalyzerEnabled() bool {
	return c.NLUMock || c.NLUURL != ""
}

func (c Config) GeneratorEnabled() bool {
	return c.GeneratorMock || (c.GeneratorBaseURL != "" && c.GeneratorModel != "")
}
