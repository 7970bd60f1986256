package database

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tracepage/src/model"
	"tracepage/src/trace"
)

// ConnectionHint is attached to connection failures.
const ConnectionHint = "The connection to the database cannot be established. " +
	"Either the database server is down or connection credentials are invalid."

// MainDB is the demo notes database. It stays nil when the connection
// failed, so note routes surface the failure on the debug page.
var MainDB *gorm.DB

// Dialector picks the gorm driver for a DATABASE_URL.
func Dialector(url string) gorm.Dialector {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url)
	default:
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
	}
}

// Open connects and migrates the notes schema.
func Open(config Config) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(config.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.LogLevel(config.GormLogLevel)),
	})
	if err != nil {
		return nil, trace.Wrap(err, "opening database", trace.WithSolution(ConnectionHint))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, trace.Wrap(err, "getting DB from GORM")
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	if err := db.AutoMigrate(&model.Note{}); err != nil {
		return nil, trace.Wrap(err, "running migrations", trace.WithSolution(ConnectionHint))
	}
	return db, nil
}

// InitMainDB opens MainDB. Callers may keep running without it.
func InitMainDB() error {
	db, err := Open(GetConfig())
	if err != nil {
		return err
	}
	MainDB = db
	logrus.Info("[database] MainDB connection established")
	return nil
}
