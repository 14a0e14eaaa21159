package router

import (
	"time"

	"github.com/Nes-cmd/merkedube/internal/config"
	"github.com/Nes-cmd/merkedube/internal/handler"
	"github.com/Nes-cmd/merkedube/internal/middleware"
	"github.com/Nes-cmd/merkedube/internal/model"
	"github.com/Nes-cmd/merkedube/internal/repository"
	"github.com/Nes-cmd/merkedube/internal/service"

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
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	inventoryRepo := repository.NewShopInventoryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	shopRepo := repository.NewShopRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	itemSvc := service.NewItemService(itemRepo, categoryRepo, supplierRepo)
	stockSvc := service.NewStockService(itemRepo, inventoryRepo, shopRepo)
	saleSvc := service.NewSaleService(saleRepo, inventoryRepo, itemRepo, creditRepo, customerRepo, shopRepo, cfg.CreditDueDays)
	creditSvc := service.NewCreditService(creditRepo, saleRepo, itemRepo)
	customerSvc := service.NewCustomerService(customerRepo, saleRepo)
	catalogSvc := service.NewCatalogService(shopRepo, categoryRepo, supplierRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	itemsH := handler.NewItemsHandler(itemSvc, stockSvc, saleSvc, creditSvc)
	salesH := handler.NewSalesHandler(saleSvc, creditSvc)
	shopsH := handler.NewShopsHandler(catalogSvc, stockSvc)
	creditsH := handler.NewCreditsHandler(creditSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", middleware.LoginRateLimiter(rdb), authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleOwner, model.RoleManager, model.RoleStaff)
	managerUp := middleware.RequireRole(model.RoleOwner, model.RoleManager)
	ownerOnly := middleware.RequireRole(model.RoleOwner)

	v1 := r.Group("/v1", jwtMW)
	{
		// Sales — every role can sell and read; settlement needs manager
		v1.POST("/sales", anyRole, salesH.Create)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/:id", anyRole, salesH.Get)
		v1.GET("/sales/:id/receipt", anyRole, salesH.Receipt)
		v1.POST("/sales/:id/credit-payed", managerUp, salesH.SettleCredit)
		v1.POST("/sales/:id/credit-declined", managerUp, salesH.DeclineCredit)

		// Items — reads for everyone, warehouse mutations for manager and up
		v1.GET("/items", anyRole, itemsH.List)
		v1.GET("/items/:id", anyRole, itemsH.Get)
		v1.GET("/items/:id/refills", anyRole, itemsH.ListRefills)
		items := v1.Group("/items", managerUp)
		{
			items.POST("", itemsH.Create)
			items.PUT("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Deactivate)
			items.POST("/:id/refill", itemsH.Refill)
			items.PATCH("/:id/quantity", itemsH.AdjustQuantity)
			items.POST("/:id/sell", itemsH.SellDirect)
			items.POST("/:id/credit-payed", itemsH.SettleCredit)
		}

		// Shops and their inventory allocations
		v1.GET("/shops", anyRole, shopsH.List)
		v1.GET("/shops/:id", anyRole, shopsH.Get)
		v1.GET("/shops/:id/inventory", anyRole, shopsH.ListInventory)
		shops := v1.Group("/shops", managerUp)
		{
			shops.POST("", shopsH.Create)
			shops.PUT("/:id", shopsH.Update)
			shops.DELETE("/:id", shopsH.Deactivate)
			shops.POST("/:id/inventory", shopsH.Transfer)
			shops.PATCH("/:id/inventory/:inventory_id", shopsH.AdjustInventory)
		}

		// Credits
		v1.GET("/credits", anyRole, creditsH.List)
		v1.GET("/credits/:id/history", anyRole, creditsH.History)

		// Customers
		v1.GET("/customers", anyRole, customersH.List)
		v1.GET("/customers/:id", anyRole, customersH.Get)
		v1.POST("/customers", anyRole, customersH.Create)
		v1.PUT("/customers/:id", managerUp, customersH.Update)
		v1.DELETE("/customers/:id", managerUp, customersH.Delete)

		// Categories and suppliers — manager-level catalog maintenance
		v1.GET("/categories", anyRole, catalogH.ListCategories)
		v1.GET("/suppliers", anyRole, catalogH.ListSuppliers)
		catalog := v1.Group("", managerUp)
		{
			catalog.POST("/categories", catalogH.CreateCategory)
			catalog.DELETE("/categories/:id", catalogH.DeleteCategory)
			catalog.POST("/suppliers", catalogH.CreateSupplier)
			catalog.DELETE("/suppliers/:id", catalogH.DeleteSupplier)
		}

		// Users — owner only
		users := v1.Group("/users", ownerOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
