package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`
	RedisTaskDB     int    `mapstructure:"REDIS_TASK_DB"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`

	// External capability keys and endpoints.
	GeminiAPIKey             string `mapstructure:"GEMINI_API_KEY"`
	TavilyAPIKey             string `mapstructure:"TAVILY_API_KEY"`
	NPIRegistryURL           string `mapstructure:"NPI_REGISTRY_URL"`
	TTSServiceURL            string `mapstructure:"TTS_SERVICE_URL"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// Pipeline policy. Tunable, not law.
	AcceptThreshold     int     `mapstructure:"ACCEPT_THRESHOLD"`
	MaxIterations       int     `mapstructure:"MAX_ITERATIONS"`
	FanoutWorkers       int     `mapstructure:"FANOUT_WORKERS"`
	CandidateTimeoutSec int     `mapstructure:"CANDIDATE_TIMEOUT_SEC"`
	PipelineTimeoutSec  int     `mapstructure:"PIPELINE_TIMEOUT_SEC"`
	AltMinSavings       float64 `mapstructure:"ALT_MIN_SAVINGS_FRACTION"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_TASK_DB", 1)
	viper.SetDefault("SESSION_TTL_HOURS", 720)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("TAVILY_API_KEY", "")
	viper.SetDefault("NPI_REGISTRY_URL", "https://npiregistry.cms.hhs.gov/api")
	viper.SetDefault("TTS_SERVICE_URL", "")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	viper.SetDefault("ACCEPT_THRESHOLD", 80)
	viper.SetDefault("MAX_ITERATIONS", 3)
	viper.SetDefault("FANOUT_WORKERS", 4)
	viper.SetDefault("CANDIDATE_TIMEOUT_SEC", 10)
	viper.SetDefault("PIPELINE_TIMEOUT_SEC", 30)
	viper.SetDefault("ALT_MIN_SAVINGS_FRACTION", 0.15)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL returns the configured session lifetime.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLHours) * time.Hour
}

// PipelineTimeout returns the end-to-end deadline for one estimate run.
func PipelineTimeout() time.Duration {
	return time.Duration(AppConfig.PipelineTimeoutSec) * time.Second
}

// CandidateTimeout returns the per-candidate budget for the fan-out stage.
func CandidateTimeout() time.Duration {
	return time.Duration(AppConfig.CandidateTimeoutSec) * time.Second
}
