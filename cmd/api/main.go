package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/paisasoft/mercado-api/internal/application/auth"
	"github.com/paisasoft/mercado-api/internal/application/catalog"
	"github.com/paisasoft/mercado-api/internal/application/checkout"
	"github.com/paisasoft/mercado-api/internal/application/orders"
	"github.com/paisasoft/mercado-api/internal/application/receipt"
	"github.com/paisasoft/mercado-api/internal/application/reports"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
	domainsunat "github.com/paisasoft/mercado-api/internal/domain/sunat"
	"github.com/paisasoft/mercado-api/internal/infrastructure/memory"
	infrapdf "github.com/paisasoft/mercado-api/internal/infrastructure/pdf"
	"github.com/paisasoft/mercado-api/internal/infrastructure/postgres"
	infrasunat "github.com/paisasoft/mercado-api/internal/infrastructure/sunat"
	httpRouter "github.com/paisasoft/mercado-api/internal/interfaces/http"
	"github.com/paisasoft/mercado-api/pkg/config"
	"github.com/paisasoft/mercado-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL si hay conexión configurada; store en
	// memoria para desarrollo local y demos.
	var (
		productRepo repository.ProductRepository
		orderRepo   repository.OrderRepository
		reportRepo  repository.ReportRepository
		userRepo    repository.UserRepository
		txRunner    checkout.TxRunner
	)
	if cfg.DB.InMemory() {
		log.Warn().Msg("sin DATABASE_URL ni DB_HOST: usando store en memoria")
		store := memory.NewStore()
		productRepo = store.ProductRepo()
		orderRepo = store.OrderRepo()
		reportRepo = store.ReportRepo()
		userRepo = store.UserRepo()
		txRunner = memory.NewTxRunner(store)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		productRepo = postgres.NewProductRepository(pool)
		orderRepo = postgres.NewOrderRepository(pool)
		reportRepo = postgres.NewReportRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	emitter := domainsunat.Emitter{
		RUC:             cfg.SUNAT.CompanyRUC,
		RazonSocial:     cfg.SUNAT.RazonSocial,
		NombreComercial: cfg.SUNAT.NombreComercial,
		Direccion:       cfg.SUNAT.Direccion,
	}

	// Cliente del gateway de facturación — con token vacío el caso de uso
	// nunca lo invoca y toda compra termina sin comprobante confirmado.
	var submitter infrasunat.InvoiceSubmitter
	if cfg.SUNAT.Token != "" {
		submitter = infrasunat.NewClient(cfg.SUNAT.SendURL)
	} else {
		log.Warn().Msg("SUNAT_TOKEN vacío: facturación electrónica deshabilitada")
	}

	placeOrderUC := checkout.NewPlaceOrderUseCase(txRunner, submitter, checkout.SUNATConfig{
		Token:   cfg.SUNAT.Token,
		Emitter: emitter,
	})

	productUC := catalog.NewProductUseCase(productRepo)
	orderUC := orders.NewOrderUseCase(orderRepo)
	reportUC := reports.NewReportUseCase(reportRepo, productRepo)

	pdfGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptPDFUC := orders.NewReceiptPDFUseCase(orderRepo, pdfGenerator, emitter)
	receiptHTMLUC := receipt.NewHTMLUseCase(orderRepo)

	notifier := auth.NewNotifier()
	notifier.Subscribe(func(ev auth.Event) {
		log.Info().Str("evento", string(ev.Kind)).Str("user_id", ev.UserID).Msg("evento de cuenta")
	})
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, notifier)
	userAdminUC := auth.NewUserAdminUseCase(userRepo, notifier)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mercado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		PlaceOrder:  placeOrderUC,
		OrderUC:     orderUC,
		ReceiptPDF:  receiptPDFUC,
		ReceiptHTML: receiptHTMLUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		UserAdminUC: userAdminUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	httpLog := log.WithComponent("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		httpLog.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
