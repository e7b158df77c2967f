package repository

import (
	"context"

	"credipos/internal/dto"

	"gorm.io/gorm"
)

// StatsRepository runs the read-only reporting aggregations. Queries are plain
// SQL: filter → group → sum/count → sort → limit, with no mutation.
type StatsRepository interface {
	VentasPorMes(ctx context.Context) ([]dto.VentasPorMes, error)
	VentasPorDiaSemana(ctx context.Context) ([]dto.VentasPorDiaSemana, error)
	TopProductos(ctx context.Context, limit int) ([]dto.ProductoTop, error)
	DeudaPorEstado(ctx context.Context) ([]dto.DeudaPorEstado, error)
	DeudaPorRango(ctx context.Context) ([]dto.DeudaPorRango, error)
	InventarioPorCategoria(ctx context.Context) ([]dto.InventarioPorCategoria, error)
	ProductosBajoStock(ctx context.Context) (int64, error)
	TotalProductos(ctx context.Context) (int64, error)
}

type statsRepo struct{ db *gorm.DB }

func NewStatsRepository(db *gorm.DB) StatsRepository { return &statsRepo{db: db} }

func (r *statsRepo) VentasPorMes(ctx context.Context) ([]dto.VentasPorMes, error) {
	var rows []dto.VentasPorMes
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(created_at, 'YYYY-MM') AS mes,
		       COUNT(*)                       AS cantidad,
		       COALESCE(SUM(total), 0)       AS total
		FROM ventas
		WHERE estado = 'completada'
		GROUP BY 1
		ORDER BY 1 DESC
		LIMIT 12`).Scan(&rows).Error
	return rows, err
}

func (r *statsRepo) VentasPorDiaSemana(ctx context.Context) ([]dto.VentasPorDiaSemana, error) {
	var rows []dto.VentasPorDiaSemana
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(ISODOW FROM created_at)::int AS dia_semana,
		       COUNT(*)                             AS cantidad,
		       COALESCE(SUM(total), 0)             AS total
		FROM ventas
		WHERE estado = 'completada'
		GROUP BY 1
		ORDER BY 1`).Scan(&rows).Error
	return rows, err
}

func (r *statsRepo) TopProductos(ctx context.Context, limit int) ([]dto.ProductoTop, error) {
	if limit < 1 {
		limit = 10
	}
	var rows []dto.ProductoTop
	err := r.db.WithContext(ctx).Raw(`
		SELECT vi.producto_id::text          AS producto_id,
		       p.nombre                      AS nombre,
		       SUM(vi.cantidad)              AS cantidad,
		       COALESCE(SUM(vi.subtotal), 0) AS total
		FROM venta_items vi
		JOIN ventas v    ON v.id = vi.venta_id AND v.estado = 'completada'
		JOIN productos p ON p.id = vi.producto_id
		GROUP BY vi.producto_id, p.nombre
		ORDER BY cantidad DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

func (r *statsRepo) DeudaPorEstado(ctx context.Context) ([]dto.DeudaPorEstado, error) {
	var rows []dto.DeudaPorEstado
	err := r.db.WithContext(ctx).Raw(`
		SELECT estado,
		       COUNT(*)                 AS cantidad,
		       COALESCE(SUM(monto), 0) AS total
		FROM creditos
		GROUP BY estado
		ORDER BY estado`).Scan(&rows).Error
	return rows, err
}

func (r *statsRepo) DeudaPorRango(ctx context.Context) ([]dto.DeudaPorRango, error) {
	var rows []dto.DeudaPorRango
	err := r.db.WithContext(ctx).Raw(`
		SELECT CASE
		         WHEN monto < 500000   THEN '0-500000'
		         WHEN monto < 1000000  THEN '500000-1000000'
		         WHEN monto < 5000000  THEN '1000000-5000000'
		         ELSE '5000000+'
		       END                      AS rango,
		       COUNT(*)                 AS cantidad,
		       COALESCE(SUM(monto), 0) AS total
		FROM creditos
		WHERE estado = 'aprobado'
		GROUP BY 1
		ORDER BY MIN(monto)`).Scan(&rows).Error
	return rows, err
}

func (r *statsRepo) InventarioPorCategoria(ctx context.Context) ([]dto.InventarioPorCategoria, error) {
	var rows []dto.InventarioPorCategoria
	err := r.db.WithContext(ctx).Raw(`
		SELECT categoria,
		       COUNT(*)                                       AS productos,
		       COALESCE(SUM(stock_actual), 0)                AS unidades,
		       COALESCE(SUM(stock_actual * precio_costo), 0) AS valor
		FROM productos
		WHERE activo = true
		GROUP BY categoria
		ORDER BY categoria`).Scan(&rows).Error
	return rows, err
}

func (r *statsRepo) ProductosBajoStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM productos
		WHERE activo = true AND stock_actual <= stock_minimo`).Scan(&count).Error
	return count, err
}

func (r *statsRepo) TotalProductos(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM productos WHERE activo = true`).Scan(&count).Error
	return count, err
}
