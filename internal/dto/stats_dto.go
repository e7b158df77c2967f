package dto

import "github.com/shopspring/decimal"

// ─── Ventas ──────────────────────────────────────────────────────────────────

type VentasPorMes struct {
	Mes      string          `json:"mes"` // YYYY-MM
	Cantidad int64           `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

type VentasPorDiaSemana struct {
	// DiaSemana is the ISO weekday: 1 = Monday … 7 = Sunday.
	DiaSemana int             `json:"dia_semana"`
	Cantidad  int64           `json:"cantidad"`
	Total     decimal.Decimal `json:"total"`
}

type ProductoTop struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int64           `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
}

type StatsVentasResponse struct {
	PorMes       []VentasPorMes       `json:"por_mes"`
	PorDiaSemana []VentasPorDiaSemana `json:"por_dia_semana"`
	TopProductos []ProductoTop        `json:"top_productos"`
}

// ─── Deuda ───────────────────────────────────────────────────────────────────

type DeudaPorEstado struct {
	Estado   string          `json:"estado"`
	Cantidad int64           `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

type DeudaPorRango struct {
	Rango    string          `json:"rango"` // e.g. "0-500000"
	Cantidad int64           `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

type StatsDeudaResponse struct {
	PorEstado []DeudaPorEstado `json:"por_estado"`
	PorRango  []DeudaPorRango  `json:"por_rango"`
}

// ─── Inventario ──────────────────────────────────────────────────────────────

type InventarioPorCategoria struct {
	Categoria string          `json:"categoria"`
	Productos int64           `json:"productos"`
	Unidades  int64           `json:"unidades"`
	Valor     decimal.Decimal `json:"valor"` // sum(stock_actual * precio_costo)
}

type StatsInventarioResponse struct {
	PorCategoria   []InventarioPorCategoria `json:"por_categoria"`
	BajoStock      int64                    `json:"bajo_stock"` // productos con stock <= minimo
	TotalProductos int64                    `json:"total_productos"`
}
