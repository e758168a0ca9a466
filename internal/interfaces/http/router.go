package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paisasoft/mercado-api/internal/application/auth"
	"github.com/paisasoft/mercado-api/internal/application/catalog"
	"github.com/paisasoft/mercado-api/internal/application/checkout"
	"github.com/paisasoft/mercado-api/internal/application/orders"
	"github.com/paisasoft/mercado-api/internal/application/receipt"
	"github.com/paisasoft/mercado-api/internal/application/reports"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *catalog.ProductUseCase
	PlaceOrder  *checkout.PlaceOrderUseCase
	OrderUC     *orders.OrderUseCase
	ReceiptPDF  *orders.ReceiptPDFUseCase
	ReceiptHTML *receipt.HTMLUseCase
	ReportUC    *reports.ReportUseCase
	AuthUC      *auth.AuthUseCase
	UserAdminUC *auth.UserAdminUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	admin := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo: lectura pública, escritura de admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", AuthMiddleware(deps.JWTSecret), admin, productHandler.Create)
	products.Put("/:id", AuthMiddleware(deps.JWTSecret), admin, productHandler.Update)
	products.Delete("/:id", AuthMiddleware(deps.JWTSecret), admin, productHandler.Delete)

	// Checkout: abierto a anónimos; con token el pedido queda asociado
	checkoutHandler := NewCheckoutHandler(deps.PlaceOrder)
	api.Post("/checkout", OptionalAuth(deps.JWTSecret), checkoutHandler.PlaceOrder)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Pedidos
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptPDF, deps.ReceiptHTML)
	ordersGroup.Get("/", orderHandler.ListMine)
	ordersGroup.Get("/all", admin, orderHandler.ListAll)
	ordersGroup.Get("/today", admin, orderHandler.ListToday)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/receipt", orderHandler.GetReceipt)
	ordersGroup.Get("/:id/receipt.pdf", orderHandler.DownloadReceiptPDF)
	ordersGroup.Patch("/:id/status", admin, orderHandler.UpdateStatus)

	// Denuncias: alta para cualquier usuario autenticado, gestión de admin
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Post("/", reportHandler.Create)
	reportsGroup.Get("/", admin, reportHandler.List)
	reportsGroup.Get("/:id", admin, reportHandler.GetByID)
	reportsGroup.Post("/:id/review", admin, reportHandler.StartReview)
	reportsGroup.Post("/:id/resolve", admin, reportHandler.Resolve)

	// Usuarios (admin)
	users := protected.Group("/users", admin)
	userHandler := NewUserHandler(deps.UserAdminUC)
	users.Get("/", userHandler.List)
	users.Post("/:id/ban", userHandler.Ban)
	users.Post("/:id/unban", userHandler.Unban)
	users.Delete("/:id", userHandler.Delete)
}
