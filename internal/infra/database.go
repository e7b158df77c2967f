package infra

import (
	"fmt"

	"credipos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables. gen_random_uuid() defaults require the
// pgcrypto extension (built into PostgreSQL 13+).
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

// RunMigrations creates the schema. Also used by integration tests against a
// throwaway container.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Sucursal{},
		&model.Cliente{},
		&model.Credito{},
		&model.Abono{},
		&model.Liquidacion{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Compra{},
		&model.CompraItem{},
		&model.MovimientoStock{},
	)
}
