package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	Payment   PaymentConfig
	WhatsApp  WhatsAppConfig
	Sweeper   SweeperConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// PaymentConfig holds PIX payment provider configuration
type PaymentConfig struct {
	BaseURL      string
	AccessToken  string
	MockProvider bool
}

// WhatsAppConfig holds WhatsApp gateway configuration
type WhatsAppConfig struct {
	BaseURL     string
	APIKey      string
	MockGateway bool
}

// SweeperConfig holds expiry sweeper trigger configuration
type SweeperConfig struct {
	Token string
}

// RateLimitConfig holds checkout rate limit configuration. When
// RedisAddr is empty the limiter falls back to an in-process bucket.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	RedisAddr         string
	RedisPassword     string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "myrifa")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Payment.BaseURL", "https://api.mercadopago.com")
	viper.SetDefault("Payment.MockProvider", true)
	viper.SetDefault("WhatsApp.MockGateway", true)
	viper.SetDefault("RateLimit.Enabled", true)
	viper.SetDefault("RateLimit.RequestsPerMinute", 30)
}
