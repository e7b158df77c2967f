package repository

import (
	"context"

	"credipos/internal/dto"
	"credipos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LiquidacionRepository interface {
	CreateTx(tx *gorm.DB, l *model.Liquidacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Liquidacion, error)
	List(ctx context.Context, filter dto.LiquidacionFilter) ([]model.Liquidacion, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	DB() *gorm.DB
}

type liquidacionRepo struct{ db *gorm.DB }

func NewLiquidacionRepository(db *gorm.DB) LiquidacionRepository { return &liquidacionRepo{db: db} }

func (r *liquidacionRepo) CreateTx(tx *gorm.DB, l *model.Liquidacion) error {
	return tx.Create(l).Error
}

func (r *liquidacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Liquidacion, error) {
	var l model.Liquidacion
	err := r.db.WithContext(ctx).Preload("Sucursal").Preload("Sucursal.Responsable").First(&l, id).Error
	return &l, err
}

func (r *liquidacionRepo) List(ctx context.Context, filter dto.LiquidacionFilter) ([]model.Liquidacion, int64, error) {
	var liquidaciones []model.Liquidacion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Liquidacion{})
	if filter.SucursalID != "" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&liquidaciones).Error
	return liquidaciones, total, err
}

func (r *liquidacionRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Liquidacion{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *liquidacionRepo) DB() *gorm.DB { return r.db }
