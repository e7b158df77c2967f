package repository

import (
	"context"

	"credipos/internal/dto"
	"credipos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenCreditos aggregates approved credits for a branch (liquidación quote).
type ResumenCreditos struct {
	Cantidad int64
	Total    decimal.Decimal
}

type CreditoRepository interface {
	CreateTx(tx *gorm.DB, c *model.Credito) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Credito, error)
	List(ctx context.Context, filter dto.CreditoFilter) ([]model.Credito, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error

	// SumAprobadosPorSucursal returns count and total of approved credits
	// issued by the branch.
	SumAprobadosPorSucursal(ctx context.Context, sucursalID uuid.UUID) (*ResumenCreditos, error)
	// SumAbonos returns the total paid against a credit (saldo pendiente reads).
	SumAbonos(ctx context.Context, creditoID uuid.UUID) (decimal.Decimal, error)

	DB() *gorm.DB
}

type creditoRepo struct{ db *gorm.DB }

func NewCreditoRepository(db *gorm.DB) CreditoRepository { return &creditoRepo{db: db} }

func (r *creditoRepo) CreateTx(tx *gorm.DB, c *model.Credito) error {
	return tx.Create(c).Error
}

func (r *creditoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Credito, error) {
	var c model.Credito
	err := r.db.WithContext(ctx).Preload("Cliente").First(&c, id).Error
	return &c, err
}

func (r *creditoRepo) List(ctx context.Context, filter dto.CreditoFilter) ([]model.Credito, int64, error) {
	var creditos []model.Credito
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Credito{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.SucursalID != "" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&creditos).Error
	return creditos, total, err
}

func (r *creditoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Credito{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *creditoRepo) SumAprobadosPorSucursal(ctx context.Context, sucursalID uuid.UUID) (*ResumenCreditos, error) {
	var row struct {
		Cantidad int64
		Total    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Credito{}).
		Select("COUNT(*) AS cantidad, COALESCE(SUM(monto), 0) AS total").
		Where("sucursal_id = ? AND estado = 'aprobado'", sucursalID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ResumenCreditos{Cantidad: row.Cantidad, Total: row.Total}, nil
}

func (r *creditoRepo) SumAbonos(ctx context.Context, creditoID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Abono{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("credito_id = ?", creditoID).
		Scan(&total).Error
	return total, err
}

func (r *creditoRepo) DB() *gorm.DB { return r.db }
