package database

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// DATABASE_URL selects the driver by scheme: postgres:// or postgresql://
	// use PostgreSQL, sqlite:// (or a bare file path) uses SQLite.
	DatabaseURL  string `envconfig:"DATABASE_URL" default:"sqlite://tracepage.db"`
	GormLogLevel int    `envconfig:"GORM_LOG_LEVEL" default:"2"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
