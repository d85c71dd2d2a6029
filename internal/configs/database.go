package config

import (
	"fmt"
	"net/url"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "task-manager.com/task-manager/internal/errors"
)

func (c Config) Dialector() (gorm.Dialector, error) {
	switch c.Backend {
	case BackendMySQL:
		dsn := mysqldriver.NewConfig()
		dsn.User = c.DatabaseUser
		dsn.Passwd = c.DatabasePassword
		dsn.Net = "tcp"
		dsn.Addr = c.DatabaseHost
		dsn.DBName = c.DatabaseName
		dsn.ParseTime = true
		dsn.Loc = time.UTC
		return mysql.Open(dsn.FormatDSN()), nil
	case BackendPostgres:
		dsn := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.DatabaseUser, c.DatabasePassword),
			Host:   c.DatabaseHost,
			Path:   "/" + c.DatabaseName,
		}
		return postgres.Open(dsn.String()), nil
	case BackendSQLite:
		return sqlite.Open(c.DatabaseName), nil
	}
	return nil, fmt.Errorf("%w: %s is not an SQL backend", apperrors.ErrConfiguration, c.Backend)
}

// NewDatabaseClient opens the SQL backend. The schema is left to the
// repository's EnsureSchema.
func NewDatabaseClient(cfg Config) (*gorm.DB, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: db open failed: %v", apperrors.ErrStorageUnavailable, err)
	}

	return db, nil
}
