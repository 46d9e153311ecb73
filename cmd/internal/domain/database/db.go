package database

import (
	"agendamento/cmd/internal/domain/entity"
	"errors"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the store behind databaseURL and makes sure the tables exist.
func Init(databaseURL string) (*gorm.DB, error) {
	db, err := Open(databaseURL)
	if err != nil {
		return nil, err
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Open picks the gorm dialector from the URL scheme. "postgres://" and
// "postgresql://" go to PostgreSQL, "sqlite://" or a bare path go to SQLite.
func Open(databaseURL string) (*gorm.DB, error) {
	dialector, isSQLite, err := dialectorFor(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		// Appointments outlive their owners, so the relation is not enforced by the store.
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newLogger(log.New("gorm")),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if isSQLite {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		// An in-memory database lives as long as its only connection.
		if !strings.Contains(databaseURL, ":memory:") {
			sqlDB.SetConnMaxLifetime(time.Hour)
		}
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return db, nil
}

// newLogger reports slow queries and real errors only. Lookups that find
// nothing are normal here, the repositories turn them into (nil, nil).
func newLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.User{}, &entity.Appointment{})
}

// Ping checks the underlying connection, used by the health route.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func dialectorFor(databaseURL string) (gorm.Dialector, bool, error) {
	url := strings.TrimSpace(databaseURL)
	switch {
	case url == "":
		return nil, false, errors.New("database url is empty")

	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), false, nil

	case strings.HasPrefix(url, "postgresql+") && strings.Contains(url, "://"):
		// "postgresql+driver://" URLs carry a client driver name we don't need.
		rest := url[strings.Index(url, "://"):]
		return postgres.Open("postgresql" + rest), false, nil

	case strings.HasPrefix(url, "sqlite:///"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite:///")), true, nil

	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), true, nil

	case strings.Contains(url, "://"):
		return nil, false, errors.New("unsupported database url scheme")
	}
	return sqlite.Open(url), true, nil
}
