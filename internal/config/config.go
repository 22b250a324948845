package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort             int    `mapstructure:"APP_PORT"`
	DatabasePath        string `mapstructure:"DATABASE_PATH"`
	ProviderURL         string `mapstructure:"PROVIDER_URL"`
	ProviderAPIKey      string `mapstructure:"PROVIDER_API_KEY"`
	KnowledgeBaseID     string `mapstructure:"KNOWLEDGE_BASE_ID"`
	LogLevel            string `mapstructure:"LOG_LEVEL"`
	RequestIntervalMs   int    `mapstructure:"REQUEST_INTERVAL_MS"`
	MaxRetries          int    `mapstructure:"MAX_RETRIES"`
	RetryBaseDelayMs    int    `mapstructure:"RETRY_BASE_DELAY_MS"`
	ThrottleFloorMs     int    `mapstructure:"THROTTLE_FLOOR_MS"`
	MaxQuestionLength   int    `mapstructure:"MAX_QUESTION_LENGTH"`
	HistoryLimit        int    `mapstructure:"HISTORY_LIMIT"`
	ConversationPreview int    `mapstructure:"CONVERSATION_PREVIEW"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/ragline.db")
	viper.SetDefault("PROVIDER_URL", "http://localhost:9400")
	viper.SetDefault("PROVIDER_API_KEY", "")
	viper.SetDefault("KNOWLEDGE_BASE_ID", "default")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("REQUEST_INTERVAL_MS", 1000)
	viper.SetDefault("MAX_RETRIES", 3)
	viper.SetDefault("RETRY_BASE_DELAY_MS", 1000)
	viper.SetDefault("THROTTLE_FLOOR_MS", 3000)
	viper.SetDefault("MAX_QUESTION_LENGTH", 4000)
	viper.SetDefault("HISTORY_LIMIT", 50)
	viper.SetDefault("CONVERSATION_PREVIEW", 120)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
