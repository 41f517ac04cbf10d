package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func init() {
	// Load env from .env; missing file is fine (container envs set vars directly).
	godotenv.Load()
}

// ConnectDatabase opens the SQLite database and returns the handle.
// The handle is passed explicitly into every model function; there is no
// package-level database singleton.
func ConnectDatabase(path string) (*gorm.DB, error) {
	if path == "" {
		path = os.Getenv("DB_PATH")
	}
	if path == "" {
		path = "kagan.db"
	}

	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), initConfig())
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; keep the pool at one connection so
	// concurrent requests queue instead of hitting SQLITE_BUSY.
	if sqlDB, derr := db.DB(); derr == nil && sqlDB != nil {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxIdleTime(time.Minute)
	}
	return db, nil
}

// ConnectTestDatabase opens a private in-memory database for tests. The
// pool is pinned to one connection; every pooled connection to ::memory:
// would otherwise see its own empty database.
func ConnectTestDatabase() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), initConfig())
	if err != nil {
		return nil, err
	}
	if sqlDB, derr := db.DB(); derr == nil && sqlDB != nil {
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func initConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         initLog(),
		NamingStrategy: initNamingStrategy(),
	}
}

func initLog() logger.Interface {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			Colorful:      false,
			LogLevel:      logger.Error,
			SlowThreshold: time.Second,
		},
	)
	return newLogger
}

func initNamingStrategy() *schema.NamingStrategy {
	return &schema.NamingStrategy{
		SingularTable: false,
		TablePrefix:   "",
	}
}
