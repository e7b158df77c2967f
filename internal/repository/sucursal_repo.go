package repository

import (
	"context"

	"credipos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SucursalRepository defines the data access contract for branches.
// Ledger mutations are storage-layer atomic updates (no read-modify-write):
// concurrent approvals and abonos against the same branch cannot lose updates.
type SucursalRepository interface {
	Create(ctx context.Context, s *model.Sucursal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error)
	List(ctx context.Context, incluirInactivas bool) ([]model.Sucursal, error)
	Update(ctx context.Context, s *model.Sucursal) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// AjustarSaldoTx applies saldo_disponible += delta atomically.
	AjustarSaldoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	// ResetSaldoTx zeroes the saldo only if it still equals esperado; returns
	// gorm.ErrRecordNotFound when a concurrent mutation changed it in between.
	ResetSaldoTx(tx *gorm.DB, id uuid.UUID, esperado decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type sucursalRepo struct{ db *gorm.DB }

func NewSucursalRepository(db *gorm.DB) SucursalRepository { return &sucursalRepo{db: db} }

func (r *sucursalRepo) Create(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sucursalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).Preload("Responsable").First(&s, id).Error
	return &s, err
}

func (r *sucursalRepo) List(ctx context.Context, incluirInactivas bool) ([]model.Sucursal, error) {
	var sucursales []model.Sucursal
	q := r.db.WithContext(ctx).Preload("Responsable").Order("nombre ASC")
	if !incluirInactivas {
		q = q.Where("activa = true")
	}
	err := q.Find(&sucursales).Error
	return sucursales, err
}

func (r *sucursalRepo) Update(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sucursalRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Sucursal{}).Where("id = ?", id).Update("activa", false).Error
}

func (r *sucursalRepo) AjustarSaldoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Sucursal{}).Where("id = ?", id).
		Update("saldo_disponible", gorm.Expr("saldo_disponible + ?", delta)).Error
}

func (r *sucursalRepo) ResetSaldoTx(tx *gorm.DB, id uuid.UUID, esperado decimal.Decimal) error {
	res := tx.Model(&model.Sucursal{}).
		Where("id = ? AND saldo_disponible = ?", id, esperado).
		Update("saldo_disponible", decimal.Zero)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sucursalRepo) DB() *gorm.DB { return r.db }
