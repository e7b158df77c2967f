package repository

import (
	"context"

	"credipos/internal/dto"
	"credipos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompraRepository interface {
	CreateTx(tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error

	// ReplaceItemsTx swaps the item set and total of a compra inside a
	// transaction; the stock reversal is the caller's responsibility.
	ReplaceItemsTx(tx *gorm.DB, c *model.Compra, items []model.CompraItem) error

	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Producto").
		First(&c, id).Error
	return &c, err
}

func (r *compraRepo) List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error) {
	var compras []model.Compra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Compra{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Items.Producto").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).
		Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Compra{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *compraRepo) ReplaceItemsTx(tx *gorm.DB, c *model.Compra, items []model.CompraItem) error {
	if err := tx.Where("compra_id = ?", c.ID).Delete(&model.CompraItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].CompraID = c.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		return err
	}
	return tx.Model(&model.Compra{}).Where("id = ?", c.ID).Update("total", c.Total).Error
}

func (r *compraRepo) DB() *gorm.DB { return r.db }
