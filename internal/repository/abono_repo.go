package repository

import (
	"context"

	"credipos/internal/dto"
	"credipos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AbonoRepository interface {
	CreateTx(tx *gorm.DB, a *model.Abono) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Abono, error)
	List(ctx context.Context, filter dto.AbonoFilter) ([]model.Abono, int64, error)

	// SumExternosPorSucursal totals abonos recorded at OTHER branches against
	// credits issued by the given branch — the amount owed back at settlement.
	SumExternosPorSucursal(ctx context.Context, sucursalID uuid.UUID) (decimal.Decimal, error)
}

type abonoRepo struct{ db *gorm.DB }

func NewAbonoRepository(db *gorm.DB) AbonoRepository { return &abonoRepo{db: db} }

func (r *abonoRepo) CreateTx(tx *gorm.DB, a *model.Abono) error {
	return tx.Create(a).Error
}

func (r *abonoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Abono, error) {
	var a model.Abono
	err := r.db.WithContext(ctx).Preload("Credito").First(&a, id).Error
	return &a, err
}

func (r *abonoRepo) List(ctx context.Context, filter dto.AbonoFilter) ([]model.Abono, int64, error) {
	var abonos []model.Abono
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Abono{})
	if filter.CreditoID != "" {
		q = q.Where("credito_id = ?", filter.CreditoID)
	}
	if filter.SucursalID != "" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Credito").Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&abonos).Error
	return abonos, total, err
}

func (r *abonoRepo) SumExternosPorSucursal(ctx context.Context, sucursalID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Abono{}).
		Select("COALESCE(SUM(abonos.monto), 0)").
		Joins("JOIN creditos ON creditos.id = abonos.credito_id").
		Where("creditos.sucursal_id = ? AND abonos.sucursal_id <> ?", sucursalID, sucursalID).
		Scan(&total).Error
	return total, err
}
