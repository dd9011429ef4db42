package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Hotel    HotelConfig
	Session  SessionConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// HotelConfig holds the reservation policy knobs.
type HotelConfig struct {
	Timezone               string
	CancellationCutoffDays int
	ReviewWindowMonths     int
	StrictTransitions      bool
	RejectPastCheckIn      bool
}

type SessionConfig struct {
	TTLHours int
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminUsername string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "hotel-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("HOTEL_TIMEZONE", "UTC")
	viper.SetDefault("BOOKING_CANCEL_CUTOFF_DAYS", 7)
	viper.SetDefault("REVIEW_WINDOW_MONTHS", 1)
	viper.SetDefault("BOOKING_STRICT_TRANSITIONS", true)
	viper.SetDefault("BOOKING_REJECT_PAST_CHECK_IN", false)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("SEED_ADMIN_USERNAME", "admin")

	viper.AutomaticEnv()

	// .env is optional; plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Hotel: HotelConfig{
			Timezone:               viper.GetString("HOTEL_TIMEZONE"),
			CancellationCutoffDays: viper.GetInt("BOOKING_CANCEL_CUTOFF_DAYS"),
			ReviewWindowMonths:     viper.GetInt("REVIEW_WINDOW_MONTHS"),
			StrictTransitions:      viper.GetBool("BOOKING_STRICT_TRANSITIONS"),
			RejectPastCheckIn:      viper.GetBool("BOOKING_REJECT_PAST_CHECK_IN"),
		},
		Session: SessionConfig{
			TTLHours: viper.GetInt("SESSION_TTL_HOURS"),
		},
		Seed: SeedConfig{
			AdminEmail:    viper.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("SEED_ADMIN_PASSWORD"),
			AdminUsername: viper.GetString("SEED_ADMIN_USERNAME"),
		},
	}

	return config, nil
}
