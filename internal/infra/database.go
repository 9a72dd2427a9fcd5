package infra

import (
	"fmt"

	"github.com/razziiel/tcgnoa/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for all tables. Conditional updates in the repositories rely on the
// stock >= 0 check constraint declared on productos.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration setups that open
// their own connection.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Producto{},
		&model.Terminal{},
		&model.Transaccion{},
		&model.TransaccionItem{},
		&model.Arqueo{},
		&model.EventoLive{},
		&model.EventoLiveProducto{},
		&model.Sorteo{},
		&model.SorteoParticipante{},
		&model.Gasto{},
	)
}
