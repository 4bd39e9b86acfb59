package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/landaetal/despensaapp/internal/autorizacion"
	"github.com/landaetal/despensaapp/internal/config"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/handler"
	"github.com/landaetal/despensaapp/internal/middleware"
	"github.com/landaetal/despensaapp/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store (per-session) ← Cliente/Respaldo
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, cliente estado.Cliente, sesiones *estado.Sesiones) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Services ─────────────────────────────────────────────────────────────
	guard := autorizacion.NewGuard(cfg.SecretoFiados, cfg.SecretoEliminarFiador)
	productoSvc := service.NewProductoService()
	ventaSvc := service.NewVentaService()
	fiadoSvc := service.NewFiadoService(guard)
	movimientoSvc := service.NewMovimientoService()
	cierreSvc := service.NewCierreService()
	reporteSvc := service.NewReporteService(cliente, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	sesionH := handler.NewSesionHandler(sesiones)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	fiadosH := handler.NewFiadosHandler(fiadoSvc)
	movimientosH := handler.NewMovimientosHandler(movimientoSvc)
	cierreH := handler.NewCierreHandler(cierreSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	configuracionH := handler.NewConfiguracionHandler()

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/v1/sesion", middleware.SesionRateLimiter(), sesionH.Abrir)

	// Everything else runs against one user's session store
	v1 := r.Group("/v1", middleware.Sesion(sesiones))
	{
		v1.GET("/sesion", sesionH.Estado)
		v1.POST("/sesion/aceptar-vacio", sesionH.AceptarVacio)
		v1.DELETE("/sesion", sesionH.Cerrar)

		v1.GET("/productos", productosH.Listar)
		v1.POST("/productos", productosH.Crear)
		v1.GET("/productos/exportar", productosH.ExportarCSV)
		v1.POST("/productos/importar", productosH.ImportarCSV)
		v1.GET("/productos/ean/:ean", productosH.BuscarPorEAN)
		v1.PUT("/productos/:id", productosH.Actualizar)
		v1.GET("/productos/:id/precios-reventa", productosH.PreciosReventa)

		v1.POST("/ventas", ventasH.Registrar)
		v1.GET("/ventas", ventasH.ListarPorDia)
		v1.DELETE("/ventas/:id", ventasH.Anular)
		v1.PATCH("/ventas/:id/metodo-pago", ventasH.CambiarMetodoPago)

		v1.GET("/fiados", fiadosH.ListarActivos)
		v1.POST("/fiados/:nombre/pagos", fiadosH.RegistrarPago)
		v1.DELETE("/fiados/:nombre", fiadosH.Eliminar)

		v1.POST("/movimientos", movimientosH.Registrar)
		v1.GET("/movimientos", movimientosH.ListarPorDia)
		v1.DELETE("/movimientos/:id", movimientosH.Eliminar)
		v1.GET("/proveedores", movimientosH.ListarProveedores)

		v1.POST("/cierre/arqueo", cierreH.Arqueo)
		v1.GET("/cierre/:fecha", cierreH.ResumenDia)
		v1.PUT("/cierre/:fecha/efectivo", cierreH.ActualizarEfectivo)
		v1.POST("/cierre/:fecha/cerrar", cierreH.Cerrar)
		v1.POST("/cierre/:fecha/reabrir", cierreH.Reabrir)

		v1.GET("/reportes/resumen", reportesH.ResumenRango)
		v1.GET("/reportes/resumen.pdf", reportesH.ResumenPDF)
		v1.GET("/reportes/ranking", reportesH.Ranking)

		v1.GET("/configuracion", configuracionH.Obtener)
		v1.PUT("/configuracion", configuracionH.Actualizar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
