package router

import (
	"time"

	"wonkepos/internal/config"
	"wonkepos/internal/handler"
	"wonkepos/internal/middleware"
	"wonkepos/internal/repository"
	"wonkepos/internal/service"
	"wonkepos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	ownerRepo := repository.NewOwnerRepository(db)
	shopRepo := repository.NewShopRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(ownerRepo, staffRepo, shopRepo, cfg)
	ownerSvc := service.NewOwnerService(ownerRepo)
	shopSvc := service.NewShopService(shopRepo, ownerRepo)
	staffSvc := service.NewStaffService(staffRepo, shopRepo)
	productSvc := service.NewProductService(productRepo, shopRepo, rdb)

	// Dispatcher may be nil when redis is unavailable; the sale service
	// treats that as alerts disabled.
	var alerts service.AlertDispatcher
	if dispatcher != nil {
		alerts = dispatcher
	}
	saleSvc := service.NewSaleService(saleRepo, productRepo, staffRepo, shopRepo, alerts)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	ownersH := handler.NewOwnersHandler(ownerSvc, shopSvc)
	shopsH := handler.NewShopsHandler(shopSvc, staffSvc, productSvc, saleSvc)
	staffH := handler.NewStaffHandler(staffSvc, saleSvc, shopSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	pricesH := handler.NewPricesHandler(productSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	api := r.Group("/api")

	// Public
	api.GET("/health", handler.Health(db, rdb))

	auth := api.Group("/auth")
	{
		auth.POST("/owner-login", middleware.LoginRateLimiter(), authH.OwnerLogin)
		auth.POST("/staff-login", middleware.LoginRateLimiter(), authH.StaffLogin)
	}

	// Price check station — always open
	api.GET("/price/:barcode", pricesH.Lookup)

	// The rest of the surface is open by default; REQUIRE_AUTH gates it
	// behind bearer tokens for hosted deployments.
	sec := api.Group("")
	if cfg.RequireAuth {
		sec.Use(middleware.JWTAuth(cfg.JWTSecret))
	}

	// Kind guards only make sense behind the token layer; without it there
	// are no claims to inspect and every kind passes.
	pass := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	ownerOnly, staffOnly := pass, pass
	if cfg.RequireAuth {
		ownerOnly = middleware.RequireKind("owner")
		staffOnly = middleware.RequireKind("staff")
	}

	owners := sec.Group("/owners")
	{
		owners.POST("", ownersH.Create)
		owners.GET("", ownersH.List)
		owners.GET("/:id", ownersH.Get)
		owners.PUT("/:id", ownerOnly, ownersH.Update)
		owners.DELETE("/:id", ownerOnly, ownersH.Delete)
		owners.GET("/:id/shops", ownersH.ListShops)
	}

	shops := sec.Group("/shops")
	{
		shops.POST("", ownerOnly, shopsH.Create)
		shops.GET("", shopsH.List)
		shops.GET("/:id", shopsH.Get)
		shops.PUT("/:id", ownerOnly, shopsH.Update)
		shops.DELETE("/:id", ownerOnly, shopsH.Delete)
		shops.GET("/:id/staff", shopsH.ListStaff)
		shops.GET("/:id/products", shopsH.ListProducts)
		shops.GET("/:id/sales", shopsH.ListSales)
		shops.POST("/:id/checkout", staffOnly, shopsH.Checkout)
		shops.POST("/:id/grv", shopsH.GRV)
	}

	staff := sec.Group("/staff")
	{
		staff.POST("", staffH.Create)
		staff.GET("", staffH.List)
		staff.GET("/:id", staffH.Get)
		staff.PUT("/:id", staffH.Update)
		staff.DELETE("/:id", staffH.Delete)
		staff.GET("/:id/sales", staffH.ListSales)
		staff.POST("/:id/cash-out", staffOnly, staffH.CashOut)
		staff.GET("/:id/day-end", staffH.DayEnd)
		staff.GET("/:id/day-end/report", staffH.DayEndReport)
	}

	products := sec.Group("/products")
	{
		products.POST("", productsH.Create)
		products.GET("", productsH.List)
		products.GET("/:id", productsH.Get)
		products.PUT("/:id", productsH.Update)
		products.DELETE("/:id", productsH.Delete)
	}

	sales := sec.Group("/sales")
	{
		sales.POST("", salesH.Create)
		sales.GET("", salesH.List)
		sales.GET("/:id", salesH.Get)
		sales.PUT("/:id", salesH.Update)
		sales.DELETE("/:id", salesH.Delete)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
