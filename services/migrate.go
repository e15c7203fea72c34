package services

import (
	"context"
	"errors"
	"fmt"

	"knowledge-base/config"
	"knowledge-base/migrations"
	"knowledge-base/models"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date. MySQL runs the embedded SQL
// migrations; other drivers are created from the model definitions.
func Migrate(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	if log == nil {
		log = config.Log
	}
	if db.Dialector.Name() != config.DriverMySQL {
		if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("schema auto-migrated", zap.String("driver", db.Dialector.Name()))
		return nil
	}

	m, err := newMigrator(ctx, db)
	if err != nil {
		return err
	}
	defer closeMigrator(m, log)

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply (database up-to-date)")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Warn("migrations applied but version could not be read", zap.Error(err))
		return nil
	}
	log.Info("applied migrations successfully", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// MigrateDown reverts the last steps migrations (all of them when steps <= 0).
func MigrateDown(ctx context.Context, db *gorm.DB, steps int, log *zap.Logger) error {
	if log == nil {
		log = config.Log
	}
	if db.Dialector.Name() != config.DriverMySQL {
		tables := make([]any, 0, len(models.JoinTables())+len(models.All()))
		for _, table := range models.JoinTables() {
			tables = append(tables, table)
		}
		all := models.All()
		for i := len(all) - 1; i >= 0; i-- {
			tables = append(tables, all[i])
		}
		if err := db.WithContext(ctx).Migrator().DropTable(tables...); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
		log.Info("schema dropped", zap.String("driver", db.Dialector.Name()))
		return nil
	}

	m, err := newMigrator(ctx, db)
	if err != nil {
		return err
	}
	defer closeMigrator(m, log)

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to revert")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to revert migrations: %w", err)
	}
	log.Info("reverted migrations", zap.Int("steps", steps))
	return nil
}

// MigrationVersion reports the applied schema version. Non-MySQL stores
// have no version table and report ok=false.
func MigrationVersion(ctx context.Context, db *gorm.DB) (version uint, dirty bool, ok bool, err error) {
	if db.Dialector.Name() != config.DriverMySQL {
		return 0, false, false, nil
	}
	m, err := newMigrator(ctx, db)
	if err != nil {
		return 0, false, false, err
	}
	defer closeMigrator(m, config.Log)

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}
	return version, dirty, true, nil
}

// newMigrator borrows one connection from gorm's pool, so closing the
// migrator returns that connection instead of closing the shared *sql.DB.
func newMigrator(ctx context.Context, db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire migration connection: %w", err)
	}

	driver, err := migratemysql.WithConnection(ctx, conn, &migratemysql.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, config.DriverMySQL, driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

func closeMigrator(m *migrate.Migrate, log *zap.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Warn("failed to close migration source", zap.Error(srcErr))
	}
	if dbErr != nil {
		log.Warn("failed to close migration connection", zap.Error(dbErr))
	}
}
