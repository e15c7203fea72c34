package config

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB connects to the configured store and stores the handle in DB.
func InitDB(settings *Settings, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = Log
	}

	dialector, err := Dialector(settings.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(settings, log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", settings.Database.Driver, err)
	}

	if settings.Database.Driver == DriverSQLite {
		// sqlite allows one writer; a single connection also keeps
		// in-memory databases alive for the lifetime of the pool.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	DB = db
	log.Info("database connected",
		zap.String("driver", settings.Database.Driver),
		zap.String("database", settings.Database.Database))
	return db, nil
}

// Dialector returns the gorm dialector for the configured driver.
func Dialector(db DatabaseSettings) (gorm.Dialector, error) {
	switch db.Driver {
	case DriverMySQL:
		return mysql.Open(MySQLDSN(db)), nil
	case DriverPostgres:
		return postgres.Open(PostgresDSN(db)), nil
	case DriverSQLite:
		return sqlite.Open(SQLiteDSN(db)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", db.Driver)
	}
}

// MySQLDSN builds the go-sql-driver DSN. multiStatements is required by the
// schema migrations, which run each file as one batch. loc=UTC matches
// models.NewDate, so DATE columns keep their calendar day on any host.
func MySQLDSN(db DatabaseSettings) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		db.Username,
		db.Password,
		db.Host,
		db.Port,
		db.Database,
	)
}

func PostgresDSN(db DatabaseSettings) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		db.Host,
		db.Port,
		db.Username,
		db.Password,
		db.Database,
	)
}

// SQLiteDSN appends the pragma that turns on foreign key enforcement, without
// which ON DELETE actions are ignored by sqlite.
func SQLiteDSN(db DatabaseSettings) string {
	path := db.Path
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// In production, SQL statements are only logged when DEBUG_SQL is set.
func newGormLogger(settings *Settings, log *zap.Logger) logger.Interface {
	logLevel := logger.Info
	if settings.IsProduction() && !settings.DebugSQL {
		logLevel = logger.Warn
	}

	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		},
	)
}
