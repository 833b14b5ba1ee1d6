package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBName            string        `mapstructure:"DB_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Lawyer accounts registered with these emails start verified, so the
	// first reviewers can verify everyone else. Comma separated in the env.
	TrustedLawyerEmails []string `mapstructure:"TRUSTED_LAWYER_EMAILS"`

	// Redis configuration.
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int           `mapstructure:"REDIS_CACHE_DB"`
	RetrievalCacheTTL time.Duration `mapstructure:"RETRIEVAL_CACHE_TTL"`

	// Vector index.
	QdrantURL        string        `mapstructure:"QDRANT_URL"`
	QdrantAPIKey     string        `mapstructure:"QDRANT_API_KEY"`
	QdrantCollection string        `mapstructure:"QDRANT_COLLECTION"`
	RetrievalTimeout time.Duration `mapstructure:"RETRIEVAL_TIMEOUT"`

	// Generative model.
	LLMProvider       string        `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string        `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey      string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel       string        `mapstructure:"OPENAI_MODEL"`
	GenerationTimeout time.Duration `mapstructure:"GENERATION_TIMEOUT"`

	// Complaint classifier: "rules" or "model".
	Classifier string `mapstructure:"CLASSIFIER"`

	// Event bus. Empty disables publishing.
	NATSURL string `mapstructure:"NATS_URL"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DB_NAME", "lawyerconnect")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("TRUSTED_LAWYER_EMAILS", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("RETRIEVAL_CACHE_TTL", "10m")
	viper.SetDefault("QDRANT_URL", "")
	viper.SetDefault("QDRANT_API_KEY", "")
	viper.SetDefault("QDRANT_COLLECTION", "legal_docs")
	viper.SetDefault("RETRIEVAL_TIMEOUT", "5s")
	viper.SetDefault("LLM_PROVIDER", "gemini")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("GENERATION_TIMEOUT", "30s")
	viper.SetDefault("CLASSIFIER", "rules")
	viper.SetDefault("NATS_URL", "")

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
