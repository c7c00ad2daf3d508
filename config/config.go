package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
}

type Server struct {
	Port string
}

type Database struct {
	// Driver selects "sqlite" (development default) or "postgres".
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	// File is the sqlite database path when Driver is "sqlite".
	File string
}

type JWT struct {
	Secret      string
	ExpireHours int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_FILE", "canvassing-development.sqlite")
	viper.SetDefault("JWT_EXPIRE_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.File = viper.GetString("DATABASE_FILE")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.ExpireHours = viper.GetInt("JWT_EXPIRE_HOURS")

	log.Info().
		Str("serverPort", config.Server.Port).
		Str("databaseDriver", config.Database.Driver).
		Msg("Config loaded")
	return &config, nil
}
