package router

import (
	"credipos/internal/config"
	"credipos/internal/handler"
	"credipos/internal/infra"
	"credipos/internal/middleware"
	"credipos/internal/model"
	"credipos/internal/repository"
	"credipos/internal/service"
	"credipos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter())

	// ── Infrastructure ───────────────────────────────────────────────────────
	codigoStore := infra.NewCodigoStore(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	creditoRepo := repository.NewCreditoRepository(db)
	abonoRepo := repository.NewAbonoRepository(db)
	liquidacionRepo := repository.NewLiquidacionRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo)
	sucursalSvc := service.NewSucursalService(sucursalRepo, usuarioRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	creditoSvc := service.NewCreditoService(creditoRepo, clienteRepo, sucursalRepo, codigoStore)
	abonoSvc := service.NewAbonoService(abonoRepo, creditoRepo, sucursalRepo)
	liquidacionSvc := service.NewLiquidacionService(liquidacionRepo, sucursalRepo, creditoRepo, abonoRepo, dispatcher)
	productoSvc := service.NewProductoService(productoRepo, movimientoRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, movimientoRepo)
	compraSvc := service.NewCompraService(compraRepo, productoRepo, proveedorRepo, movimientoRepo)
	statsSvc := service.NewStatsService(statsRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	sucursalesH := handler.NewSucursalesHandler(sucursalSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	creditosH := handler.NewCreditosHandler(creditoSvc)
	abonosH := handler.NewAbonosHandler(abonoSvc)
	liquidacionesH := handler.NewLiquidacionesHandler(liquidacionSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	statsH := handler.NewStatsHandler(statsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Credit simulation — no auth required, used by the public landing page
	api.POST("/creditos/simular", creditosH.Simular)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	protegido := api.Group("", jwtMW)
	{
		protegido.GET("/auth/me", authH.Me)

		todos := middleware.RequireRol(model.RolComercial, model.RolAdministrativo, model.RolSuperusuario)
		admin := middleware.RequireRol(model.RolAdministrativo, model.RolSuperusuario)

		creditos := protegido.Group("/creditos", todos)
		{
			creditos.POST("/validar-cliente", creditosH.ValidarCliente)
			creditos.POST("", creditosH.Crear)
			creditos.GET("", creditosH.Listar)
			creditos.GET("/:id", creditosH.Obtener)
			creditos.PATCH("/:id/estado", middleware.RequireRol(model.RolAdministrativo, model.RolSuperusuario), creditosH.ActualizarEstado)
		}

		abonos := protegido.Group("/abonos", todos)
		{
			abonos.POST("", abonosH.Registrar)
			abonos.GET("", abonosH.Listar)
		}

		clientes := protegido.Group("/clientes", todos)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", middleware.RequireRol(model.RolAdministrativo, model.RolSuperusuario), clientesH.Eliminar)
		}

		// Catalog reads open to every role (POS needs them); writes admin-only
		protegido.GET("/productos", todos, productosH.Listar)
		protegido.GET("/productos/:id", todos, productosH.Obtener)
		prods := protegido.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.PATCH("/:id/stock", productosH.AjustarStock)
			prods.GET("/:id/movimientos", productosH.Movimientos)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		ventas := protegido.Group("/ventas", todos)
		{
			ventas.POST("", ventasH.Registrar)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.Obtener)
			ventas.DELETE("/:id", middleware.RequireRol(model.RolAdministrativo, model.RolSuperusuario), ventasH.Anular)
		}

		compras := protegido.Group("/compras", admin)
		{
			compras.POST("", comprasH.Registrar)
			compras.GET("", comprasH.Listar)
			compras.GET("/:id", comprasH.Obtener)
			compras.PUT("/:id", comprasH.Actualizar)
			compras.DELETE("/:id", comprasH.Anular)
		}

		proveedores := protegido.Group("/proveedores", admin)
		{
			proveedores.POST("", proveedoresH.Crear)
			proveedores.GET("", proveedoresH.Listar)
			proveedores.GET("/:id", proveedoresH.Obtener)
			proveedores.PUT("/:id", proveedoresH.Actualizar)
			proveedores.DELETE("/:id", proveedoresH.Desactivar)
		}

		// La lectura por ID queda abierta a comerciales: el handler restringe a
		// la sucursal propia.
		protegido.GET("/sucursales/:id", todos, sucursalesH.Obtener)
		sucursales := protegido.Group("/sucursales", admin)
		{
			sucursales.POST("", sucursalesH.Crear)
			sucursales.GET("", sucursalesH.Listar)
			sucursales.PUT("/:id", sucursalesH.Actualizar)
			sucursales.DELETE("/:id", sucursalesH.Desactivar)
		}

		usuarios := protegido.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.Obtener)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}

		liquidaciones := protegido.Group("/liquidaciones", admin)
		{
			liquidaciones.POST("/calcular", liquidacionesH.Calcular)
			liquidaciones.POST("", liquidacionesH.Crear)
			liquidaciones.GET("", liquidacionesH.Listar)
			liquidaciones.GET("/:id", liquidacionesH.Obtener)
			liquidaciones.PATCH("/:id/estado", liquidacionesH.ActualizarEstado)
		}

		stats := protegido.Group("/stats", admin)
		{
			stats.GET("/ventas", statsH.Ventas)
			stats.GET("/deuda", statsH.Deuda)
			stats.GET("/inventario", statsH.Inventario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
