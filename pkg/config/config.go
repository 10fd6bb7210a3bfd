package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Recognizer RecognizerConfig `mapstructure:"recognizer"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Redaction  RedactionConfig  `mapstructure:"redaction"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RecognizerConfig points at the external PII analyzer. FailClosed decides
// what happens when the analyzer is down: false forwards the request with
// zero redactions, true blocks it.
type RecognizerConfig struct {
	URL            string `mapstructure:"url"`
	Language       string `mapstructure:"language"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	FailClosed     bool   `mapstructure:"fail_closed"`
}

type ProvidersConfig struct {
	TimeoutSeconds int            `mapstructure:"timeout_seconds"`
	OpenAI         ProviderConfig `mapstructure:"openai"`
	Google         ProviderConfig `mapstructure:"google"`
	Anthropic      ProviderConfig `mapstructure:"anthropic"`
}

type ProviderConfig struct {
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
}

type RedactionConfig struct {
	ExcludedEntities []string `mapstructure:"excluded_entities"`
	MappingTTLHours  int      `mapstructure:"mapping_ttl_hours"`
}

type AdminConfig struct {
	Token string `mapstructure:"token"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues()
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	// The slice hook lets env vars supply list values as comma separated
	// strings, e.g. REDACTION_EXCLUDED_ENTITIES=UK_NHS,AU_TFN.
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(out, decodeHook); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Metrics.Port == 0 {
		globalConfig.Metrics.Port = 9090
	}
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Recognizer.Language == "" {
		globalConfig.Recognizer.Language = "en"
	}
	if globalConfig.Recognizer.TimeoutSeconds == 0 {
		globalConfig.Recognizer.TimeoutSeconds = 10
	}
	if globalConfig.Providers.TimeoutSeconds == 0 {
		globalConfig.Providers.TimeoutSeconds = 60
	}
	if globalConfig.Providers.OpenAI.DefaultModel == "" {
		globalConfig.Providers.OpenAI.DefaultModel = "gpt-4o-mini"
	}
	if globalConfig.Providers.Google.DefaultModel == "" {
		globalConfig.Providers.Google.DefaultModel = "gemini-2.0-flash"
	}
	if globalConfig.Providers.Anthropic.DefaultModel == "" {
		globalConfig.Providers.Anthropic.DefaultModel = "claude-sonnet-4-5"
	}
	if len(globalConfig.Redaction.ExcludedEntities) == 0 {
		globalConfig.Redaction.ExcludedEntities = []string{"UK_NHS"}
	}
	if globalConfig.Redaction.MappingTTLHours == 0 {
		globalConfig.Redaction.MappingTTLHours = 24
	}
}

func GetConfig() *Config {
	return &globalConfig
}
