// Package gormrepo implements the repositories on gorm over PostgreSQL.
package gormrepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector returns the gorm driver for a postgres:// or postgresql:// URL.
func Dialector(databaseURL string) (gorm.Dialector, error) {
	if !strings.HasPrefix(databaseURL, "postgres://") && !strings.HasPrefix(databaseURL, "postgresql://") {
		return nil, fmt.Errorf("unsupported database url scheme, want postgres:// or postgresql://")
	}
	return postgres.Open(databaseURL), nil
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	dialector, err := Dialector(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables for every stored type.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Appointment{},
		&domain.Allergy{},
		&domain.Medication{},
		&domain.Report{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Appointments: NewResourceRepository[domain.Appointment](db),
		Allergies:    NewResourceRepository[domain.Allergy](db),
		Medications:  NewResourceRepository[domain.Medication](db),
		Reports:      NewResourceRepository[domain.Report](db),
	}
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
