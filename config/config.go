package config

import (
	"speedballhub/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Environment          string
	ServerPort           int
	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int
	SessionSecret        string
	AdminEmail           string
	AdminPassword        string
	CorsOrigins          string
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", 5000)
	viper.SetDefault("DB_PATH", "data/speedballhub.db")
	viper.SetDefault("CACHE_ADDRESS", "localhost")
	viper.SetDefault("CACHE_PORT", 6379)
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("ADMIN_EMAIL", "admin@rowad.com")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	if err := viper.ReadInConfig(); err != nil {
		log.Info("No .env file found, using environment variables")
	}
	viper.AutomaticEnv()

	config := Config{
		Environment:          viper.GetString("ENVIRONMENT"),
		ServerPort:           viper.GetInt("PORT"),
		DatabaseDbPath:       viper.GetString("DB_PATH"),
		DatabaseCacheAddress: viper.GetString("CACHE_ADDRESS"),
		DatabaseCachePort:    viper.GetInt("CACHE_PORT"),
		SessionSecret:        viper.GetString("SESSION_SECRET"),
		AdminEmail:           viper.GetString("ADMIN_EMAIL"),
		AdminPassword:        viper.GetString("ADMIN_PASSWORD"),
		CorsOrigins:          viper.GetString("CORS_ORIGINS"),
	}

	if config.SessionSecret == "" {
		return Config{}, log.ErrMsg("SESSION_SECRET is required")
	}

	if config.AdminPassword == "" {
		return Config{}, log.ErrMsg("ADMIN_PASSWORD is required")
	}

	log.Info("Configuration loaded", "environment", config.Environment, "port", config.ServerPort)
	return config, nil
}
