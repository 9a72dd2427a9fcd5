package router

import (
	"github.com/razziiel/tcgnoa/internal/config"
	"github.com/razziiel/tcgnoa/internal/handler"
	"github.com/razziiel/tcgnoa/internal/middleware"
	"github.com/razziiel/tcgnoa/internal/model"
	"github.com/razziiel/tcgnoa/internal/notify"
	"github.com/razziiel/tcgnoa/internal/repository"
	"github.com/razziiel/tcgnoa/internal/service"
	"github.com/razziiel/tcgnoa/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	transaccionRepo := repository.NewTransaccionRepository(db)
	terminalRepo := repository.NewTerminalRepository(db)
	arqueoRepo := repository.NewArqueoRepository(db)
	eventoRepo := repository.NewEventoLiveRepository(db)
	sorteoRepo := repository.NewSorteoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	notifier := notify.NewRedisNotifier(rdb)
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, rdb, notifier)
	carritoSvc := service.NewCarritoService(productoRepo, terminalRepo)
	arqueoSvc := service.NewArqueoService(arqueoRepo, transaccionRepo)
	terminalSvc := service.NewTerminalService(terminalRepo, arqueoSvc, carritoSvc, notifier, dispatcher)
	ventaSvc := service.NewVentaService(transaccionRepo, productoRepo, terminalRepo, carritoSvc, notifier, dispatcher)
	liveSvc := service.NewLiveService(eventoRepo, notifier)
	sorteoSvc := service.NewSorteoService(sorteoRepo, notifier)
	gastoSvc := service.NewGastoService(gastoRepo, transaccionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductoHandler(productoSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	terminalesH := handler.NewTerminalHandler(terminalSvc)
	ventasH := handler.NewVentaHandler(ventaSvc)
	liveH := handler.NewLiveHandler(productoSvc, ventaSvc, liveSvc, rdb)
	arqueosH := handler.NewArqueoHandler(arqueoSvc)
	sorteosH := handler.NewSorteoHandler(sorteoSvc)
	gastosH := handler.NewGastoHandler(gastoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Live storefront — unauthenticated, viewers hit this during streams
	live := r.Group("/v1/live", middleware.PublicRateLimiter())
	{
		live.GET("/catalogo", liveH.Catalogo)
		live.GET("/eventos", liveH.EventosActivos)
		live.GET("/stream", liveH.Stream)
		live.POST("/claims", liveH.Claim)
		live.POST("/ofertas", liveH.Oferta)
		live.POST("/sorteos/:id/participar", sorteosH.Participar)
	}

	// Protected routes — Personal can operate, Administrador sees everything
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	operador := middleware.RequireRole(model.RolPersonal, model.RolAdministrador)
	admin := middleware.RequireRole(model.RolAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/perfil", authH.Perfil)

		// Catálogo
		v1.GET("/productos", operador, productosH.Listar)
		v1.GET("/productos/:id", operador, productosH.Obtener)
		v1.POST("/productos", operador, productosH.Crear)
		v1.PUT("/productos/:id", operador, productosH.Actualizar)
		v1.DELETE("/productos/:id", operador, productosH.Archivar)
		v1.PATCH("/productos/:id/restaurar", operador, productosH.Restaurar)
		v1.PATCH("/productos/:id/subasta", operador, productosH.SetSubasta)
		v1.PATCH("/productos/:id/stock", admin, productosH.AjustarStock)

		// Carrito — bound to the operator's open terminal
		carrito := v1.Group("/carrito", operador)
		{
			carrito.GET("", carritoH.Obtener)
			carrito.POST("/items", carritoH.Agregar)
			carrito.PUT("/items/:id", carritoH.FijarCantidad)
			carrito.DELETE("", carritoH.Vaciar)
		}

		// Terminales
		terminales := v1.Group("/terminales", operador)
		{
			terminales.GET("", terminalesH.Listar)
			terminales.POST("", admin, terminalesH.Crear)
			terminales.GET("/abierta", terminalesH.Abierta)
			terminales.POST("/:id/abrir", terminalesH.Abrir)
			terminales.POST("/:id/cerrar", terminalesH.Cerrar)
		}

		// Ventas
		v1.POST("/ventas/completar", operador, ventasH.Completar)
		v1.GET("/ventas", operador, ventasH.Listar)
		v1.PATCH("/ventas/:id/estado", admin, ventasH.ActualizarEstado)

		// Eventos live (admin side)
		eventos := v1.Group("/eventos", operador)
		{
			eventos.GET("", liveH.ListarEventos)
			eventos.POST("", liveH.CrearEvento)
			eventos.PUT("/:id", liveH.ActualizarEvento)
			eventos.PATCH("/:id/toggle", liveH.ToggleEvento)
		}

		// Sorteos (admin side)
		sorteos := v1.Group("/sorteos", operador)
		{
			sorteos.GET("", sorteosH.Listar)
			sorteos.POST("", sorteosH.Crear)
			sorteos.POST("/:id/realizar", sorteosH.Realizar)
		}

		// Finanzas — administrador only
		v1.GET("/arqueos", admin, arqueosH.Listar)
		gastos := v1.Group("/gastos", admin)
		{
			gastos.GET("", gastosH.Listar)
			gastos.POST("", gastosH.Crear)
			gastos.DELETE("/:id", gastosH.Eliminar)
		}
		v1.GET("/resumen", admin, gastosH.Resumen)
	}

	return r
}
