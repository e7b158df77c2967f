package service

import (
	"context"
	"errors"

	"credipos/internal/dto"
	"credipos/internal/model"
	"credipos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Tx methods accept a nil *gorm.DB because runTx
// skips the real transaction when the service is built without a database.

// ── Sucursales ────────────────────────────────────────────────────────────────

type stubSucursalRepo struct {
	sucursales map[uuid.UUID]*model.Sucursal
}

func newStubSucursalRepo() *stubSucursalRepo {
	return &stubSucursalRepo{sucursales: make(map[uuid.UUID]*model.Sucursal)}
}

func (r *stubSucursalRepo) Create(_ context.Context, s *model.Sucursal) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sucursales[s.ID] = s
	return nil
}

func (r *stubSucursalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sucursal, error) {
	s, ok := r.sucursales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSucursalRepo) List(_ context.Context, incluirInactivas bool) ([]model.Sucursal, error) {
	var out []model.Sucursal
	for _, s := range r.sucursales {
		if incluirInactivas || s.Activa {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSucursalRepo) Update(_ context.Context, s *model.Sucursal) error {
	r.sucursales[s.ID] = s
	return nil
}

func (r *stubSucursalRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s, ok := r.sucursales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Activa = false
	return nil
}

func (r *stubSucursalRepo) AjustarSaldoTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	s, ok := r.sucursales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.SaldoDisponible = s.SaldoDisponible.Add(delta)
	return nil
}

func (r *stubSucursalRepo) ResetSaldoTx(_ *gorm.DB, id uuid.UUID, esperado decimal.Decimal) error {
	s, ok := r.sucursales[id]
	if !ok || !s.SaldoDisponible.Equal(esperado) {
		return gorm.ErrRecordNotFound
	}
	s.SaldoDisponible = decimal.Zero
	return nil
}

func (r *stubSucursalRepo) DB() *gorm.DB { return nil }

var _ repository.SucursalRepository = (*stubSucursalRepo)(nil)

// ── Créditos y abonos ─────────────────────────────────────────────────────────

type stubCreditoRepo struct {
	creditos map[uuid.UUID]*model.Credito
	abonos   []model.Abono
}

func newStubCreditoRepo() *stubCreditoRepo {
	return &stubCreditoRepo{creditos: make(map[uuid.UUID]*model.Credito)}
}

func (r *stubCreditoRepo) CreateTx(_ *gorm.DB, c *model.Credito) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.creditos[c.ID] = c
	return nil
}

func (r *stubCreditoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Credito, error) {
	c, ok := r.creditos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCreditoRepo) List(_ context.Context, filter dto.CreditoFilter) ([]model.Credito, int64, error) {
	var out []model.Credito
	for _, c := range r.creditos {
		if filter.Estado != "" && filter.Estado != "all" && c.Estado != filter.Estado {
			continue
		}
		if filter.SucursalID != "" && c.SucursalID.String() != filter.SucursalID {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCreditoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	c, ok := r.creditos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	return nil
}

func (r *stubCreditoRepo) SumAprobadosPorSucursal(_ context.Context, sucursalID uuid.UUID) (*repository.ResumenCreditos, error) {
	resumen := &repository.ResumenCreditos{Total: decimal.Zero}
	for _, c := range r.creditos {
		if c.SucursalID == sucursalID && c.Estado == "aprobado" {
			resumen.Cantidad++
			resumen.Total = resumen.Total.Add(c.Monto)
		}
	}
	return resumen, nil
}

func (r *stubCreditoRepo) SumAbonos(_ context.Context, creditoID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range r.abonos {
		if a.CreditoID == creditoID {
			total = total.Add(a.Monto)
		}
	}
	return total, nil
}

func (r *stubCreditoRepo) DB() *gorm.DB { return nil }

var _ repository.CreditoRepository = (*stubCreditoRepo)(nil)

// stubAbonoRepo shares the abono slice with its stubCreditoRepo so that
// SumAbonos sees every payment immediately.
type stubAbonoRepo struct {
	creditoRepo *stubCreditoRepo
}

func (r *stubAbonoRepo) CreateTx(_ *gorm.DB, a *model.Abono) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.creditoRepo.abonos = append(r.creditoRepo.abonos, *a)
	return nil
}

func (r *stubAbonoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Abono, error) {
	for i := range r.creditoRepo.abonos {
		if r.creditoRepo.abonos[i].ID == id {
			return &r.creditoRepo.abonos[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAbonoRepo) List(_ context.Context, filter dto.AbonoFilter) ([]model.Abono, int64, error) {
	var out []model.Abono
	for _, a := range r.creditoRepo.abonos {
		if filter.CreditoID != "" && a.CreditoID.String() != filter.CreditoID {
			continue
		}
		if filter.SucursalID != "" && a.SucursalID.String() != filter.SucursalID {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAbonoRepo) SumExternosPorSucursal(_ context.Context, sucursalID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range r.creditoRepo.abonos {
		c, ok := r.creditoRepo.creditos[a.CreditoID]
		if ok && c.SucursalID == sucursalID && a.SucursalID != sucursalID {
			total = total.Add(a.Monto)
		}
	}
	return total, nil
}

var _ repository.AbonoRepository = (*stubAbonoRepo)(nil)

// ── Clientes ──────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[string]*model.Cliente // by documento
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[string]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.Documento] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) FindByDocumento(_ context.Context, documento string) (*model.Cliente, error) {
	c, ok := r.clientes[documento]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.Documento] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	for doc, c := range r.clientes {
		if c.ID == id {
			delete(r.clientes, doc)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) FindByDocumentoTx(_ *gorm.DB, documento string) (*model.Cliente, error) {
	return r.FindByDocumento(context.Background(), documento)
}

func (r *stubClienteRepo) CreateTx(_ *gorm.DB, c *model.Cliente) error {
	return r.Create(context.Background(), c)
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Códigos de verificación ───────────────────────────────────────────────────

type stubCodigoStore struct {
	codigos map[string]string
}

func newStubCodigoStore() *stubCodigoStore {
	return &stubCodigoStore{codigos: make(map[string]string)}
}

func (s *stubCodigoStore) Guardar(_ context.Context, documento, codigo string) error {
	s.codigos[documento] = codigo
	return nil
}

func (s *stubCodigoStore) Consumir(_ context.Context, documento string) (string, error) {
	codigo, ok := s.codigos[documento]
	if !ok {
		return "", errors.New("codigo no encontrado")
	}
	delete(s.codigos, documento)
	return codigo, nil
}

var _ CodigoStore = (*stubCodigoStore)(nil)

// ── Productos y movimientos de stock ──────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo && p.Activo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockActual += delta
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) ListByProducto(_ context.Context, productoID uuid.UUID, _ int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── Ventas ────────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas    map[uuid.UUID]*model.Venta
	ticketSeq int
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ticketSeq++
	v.Numero = r.ticketSeq
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && filter.Estado != "all" && v.Estado != filter.Estado {
			continue
		}
		if filter.SucursalID != "" && v.SucursalID.String() != filter.SucursalID {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Compras ───────────────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras map[uuid.UUID]*model.Compra
	seq     int
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uuid.UUID]*model.Compra)}
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.seq++
	c.Numero = r.seq
	r.compras[c.ID] = c
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompraRepo) List(_ context.Context, _ dto.CompraFilter) ([]model.Compra, int64, error) {
	var out []model.Compra
	for _, c := range r.compras {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	c, ok := r.compras[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	return nil
}

func (r *stubCompraRepo) ReplaceItemsTx(_ *gorm.DB, c *model.Compra, items []model.CompraItem) error {
	stored, ok := r.compras[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Items = items
	stored.Total = c.Total
	return nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── Proveedores ───────────────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context, incluirInactivos bool) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if incluirInactivos || p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── Liquidaciones ─────────────────────────────────────────────────────────────

type stubLiquidacionRepo struct {
	liquidaciones map[uuid.UUID]*model.Liquidacion
}

func newStubLiquidacionRepo() *stubLiquidacionRepo {
	return &stubLiquidacionRepo{liquidaciones: make(map[uuid.UUID]*model.Liquidacion)}
}

func (r *stubLiquidacionRepo) CreateTx(_ *gorm.DB, l *model.Liquidacion) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.liquidaciones[l.ID] = l
	return nil
}

func (r *stubLiquidacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Liquidacion, error) {
	l, ok := r.liquidaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLiquidacionRepo) List(_ context.Context, _ dto.LiquidacionFilter) ([]model.Liquidacion, int64, error) {
	var out []model.Liquidacion
	for _, l := range r.liquidaciones {
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (r *stubLiquidacionRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	l, ok := r.liquidaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.Estado = estado
	return nil
}

func (r *stubLiquidacionRepo) DB() *gorm.DB { return nil }

var _ repository.LiquidacionRepository = (*stubLiquidacionRepo)(nil)

// stubEnqueuer records enqueued settlement IDs.
type stubEnqueuer struct {
	encolados []string
}

func (e *stubEnqueuer) EnqueueLiquidacion(_ context.Context, liquidacionID string) error {
	e.encolados = append(e.encolados, liquidacionID)
	return nil
}

var _ Enqueuer = (*stubEnqueuer)(nil)

// ── Usuarios ──────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[string]*model.Usuario // by documento
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.Documento] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByDocumento(_ context.Context, documento string) (*model.Usuario, error) {
	u, ok := r.usuarios[documento]
	if !ok || !u.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.Documento] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, u := range r.usuarios {
		if u.ID == id {
			u.Activo = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	for _, u := range r.usuarios {
		if u.ID == id {
			u.Activo = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedSucursal(repo *stubSucursalRepo, nombre string, saldo decimal.Decimal) *model.Sucursal {
	s := &model.Sucursal{
		ID:              uuid.New(),
		Nombre:          nombre,
		Direccion:       "Calle 1 # 2-3",
		ResponsableID:   uuid.New(),
		SaldoDisponible: saldo,
		Activa:          true,
	}
	repo.sucursales[s.ID] = s
	return s
}

func seedProducto(repo *stubProductoRepo, nombre, codigo string, stock int, precio float64) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		Codigo:      codigo,
		Nombre:      nombre,
		Categoria:   "general",
		PrecioCosto: decimal.NewFromFloat(precio).Div(decimal.NewFromInt(2)),
		PrecioVenta: decimal.NewFromFloat(precio),
		StockActual: stock,
		StockMinimo: 5,
		Activo:      true,
	}
	repo.productos[p.ID] = p
	return p
}

func seedCredito(repo *stubCreditoRepo, sucursalID uuid.UUID, monto decimal.Decimal, estado string) *model.Credito {
	c := &model.Credito{
		ID:         uuid.New(),
		ClienteID:  uuid.New(),
		SucursalID: sucursalID,
		UsuarioID:  uuid.New(),
		Monto:      monto,
		Plazo:      12,
		ValorCuota: monto.Div(decimal.NewFromInt(12)).Round(0),
		Estado:     estado,
	}
	repo.creditos[c.ID] = c
	return c
}
