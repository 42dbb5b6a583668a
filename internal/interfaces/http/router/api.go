package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/interfaces/http/handler"
)

// Handlers are the endpoint handlers mounted by RegisterAPI
type Handlers struct {
	Health          *handler.HealthHandler
	Auth            *handler.AuthHandler
	Product         *handler.ProductHandler
	Category        *handler.CategoryHandler
	Image           *handler.ImageHandler
	ProductCSV      *handler.ProductCSVHandler
	Supplier        *handler.SupplierHandler
	Warehouse       *handler.WarehouseHandler
	ProductSupplier *handler.ProductSupplierHandler
	Stock           *handler.StockHandler
	Exchange        *handler.ExchangeHandler
	Organization    *handler.OrganizationHandler
	APIKey          *handler.APIKeyHandler
	Dashboard       *handler.DashboardHandler

	// Docs serves the swagger UI; nil leaves /docs unrouted
	Docs gin.HandlerFunc
}

// Guards are the access checks placed in front of each surface. Nil
// guards are skipped, except APIKey, Session and Staff which are required.
type Guards struct {
	APIKey   gin.HandlerFunc
	Session  gin.HandlerFunc
	Staff    gin.HandlerFunc
	Throttle gin.HandlerFunc
	CSRF     gin.HandlerFunc
	Docs     gin.HandlerFunc
}

// RegisterAPI registers the public, private, auth and admin surfaces.
//
//	/public   health (open) and catalog reads behind X-API-Key
//	/private  partner and stock reads for staff sessions
//	/auth     session login, logout and current user
//	/admin    back-office CRUD for staff sessions
func RegisterAPI(r *Router, h Handlers, g Guards) {
	r.Register(publicRoutes(h, g)).
		Register(privateRoutes(h, g)).
		Register(authRoutes(h, g)).
		Register(adminRoutes(h, g))

	if h.Docs != nil {
		docs := NewDomainGroup("docs", "/docs")
		docs.Use(g.Docs, g.Session, g.Staff)
		docs.GET("/*any", h.Docs)
		r.Register(docs)
	}
}

func publicRoutes(h Handlers, g Guards) *DomainGroup {
	public := NewDomainGroup("public", "/public")

	open := public.Group("open", "")
	open.Use(g.Throttle)
	open.GET("/health", h.Health.Check)

	keyed := public.Group("keyed", "")
	keyed.Use(g.APIKey, g.Throttle)
	keyed.GET("/organization", h.Organization.GetPublic)
	keyed.GET("/products/", h.Product.List)
	keyed.GET("/products/:id/", h.Product.Get)
	keyed.GET("/products/:id/images/", h.Image.List)
	keyed.GET("/categories/", h.Category.List)
	keyed.GET("/categories/:category_id/products/", h.Product.ListByCategory)
	keyed.GET("/exchange-rate/", h.Exchange.GetRate)
	keyed.GET("/convert-product-price/", h.Exchange.ConvertProductPrice)
	return public
}

func privateRoutes(h Handlers, g Guards) *DomainGroup {
	private := NewDomainGroup("private", "/private")
	private.Use(g.Session, g.Staff, g.Throttle)
	private.GET("/suppliers/", h.Supplier.List)
	private.GET("/suppliers/:id", h.Supplier.Get)
	private.GET("/warehouses/", h.Warehouse.List)
	private.GET("/warehouses/:id", h.Warehouse.Get)
	private.GET("/stocks/", h.Stock.List)
	private.GET("/product-supplier/", h.ProductSupplier.List)
	return private
}

func authRoutes(h Handlers, g Guards) *DomainGroup {
	authGroup := NewDomainGroup("auth", "/auth")

	anonymous := authGroup.Group("anonymous", "")
	anonymous.Use(g.Throttle)
	anonymous.POST("/login", h.Auth.Login)
	anonymous.POST("/logout", h.Auth.Logout)

	session := authGroup.Group("session", "")
	session.Use(g.Session, g.Throttle)
	session.GET("/me", h.Auth.Me)
	return authGroup
}

func adminRoutes(h Handlers, g Guards) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin")
	admin.Use(g.Session, g.Staff, g.Throttle, g.CSRF)

	admin.GET("/dashboard", h.Dashboard.Summary)

	admin.GET("/products", h.Product.List)
	admin.GET("/products/export", h.ProductCSV.Export)
	admin.POST("/products/import", h.ProductCSV.Import)
	admin.POST("/products", h.Product.Create)
	admin.GET("/products/:id", h.Product.Get)
	admin.PUT("/products/:id", h.Product.Update)
	admin.PUT("/products/:id/categories", h.Product.SetCategories)
	admin.DELETE("/products/:id", h.Product.Delete)
	admin.GET("/products/:id/images", h.Image.List)
	admin.POST("/products/:id/images", h.Image.Upload)
	admin.DELETE("/product-images/:id", h.Image.Delete)

	admin.GET("/categories", h.Category.List)
	admin.POST("/categories", h.Category.Create)
	admin.GET("/categories/:id", h.Category.Get)
	admin.PUT("/categories/:id", h.Category.Update)
	admin.DELETE("/categories/:id", h.Category.Delete)

	admin.GET("/suppliers", h.Supplier.List)
	admin.POST("/suppliers", h.Supplier.Create)
	admin.GET("/suppliers/:id", h.Supplier.Get)
	admin.PUT("/suppliers/:id", h.Supplier.Update)
	admin.DELETE("/suppliers/:id", h.Supplier.Delete)

	admin.GET("/product-suppliers", h.ProductSupplier.List)
	admin.POST("/product-suppliers", h.ProductSupplier.Create)
	admin.GET("/product-suppliers/:id", h.ProductSupplier.Get)
	admin.PUT("/product-suppliers/:id", h.ProductSupplier.Update)
	admin.DELETE("/product-suppliers/:id", h.ProductSupplier.Delete)

	admin.GET("/warehouses", h.Warehouse.List)
	admin.POST("/warehouses", h.Warehouse.Create)
	admin.GET("/warehouses/:id", h.Warehouse.Get)
	admin.PUT("/warehouses/:id", h.Warehouse.Update)
	admin.DELETE("/warehouses/:id", h.Warehouse.Delete)

	admin.GET("/stocks", h.Stock.List)
	admin.POST("/stocks", h.Stock.Create)
	admin.GET("/stocks/:id", h.Stock.Get)
	admin.PUT("/stocks/:id", h.Stock.Update)
	admin.DELETE("/stocks/:id", h.Stock.Delete)

	admin.GET("/api-keys", h.APIKey.List)
	admin.POST("/api-keys", h.APIKey.Create)
	admin.GET("/api-keys/:id", h.APIKey.Get)
	admin.POST("/api-keys/:id/activate", h.APIKey.Activate)
	admin.POST("/api-keys/:id/deactivate", h.APIKey.Deactivate)
	admin.DELETE("/api-keys/:id", h.APIKey.Delete)

	admin.GET("/organization", h.Organization.Get)
	admin.PUT("/organization", h.Organization.Update)

	admin.GET("/exchange-rates", h.Exchange.ListRates)
	return admin
}
