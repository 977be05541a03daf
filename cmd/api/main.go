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
	appanalytics "github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	infrapdf "github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/internal/infrastructure/rediscache"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clock := domain.SystemClock{}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewProductVariantRepository(pool)
	lotRepo := postgres.NewWeightLotRepository(pool)
	taxRepo := postgres.NewTaxRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, clock, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo, brandRepo, clock)
	variantUC := catalog.NewVariantUseCase(variantRepo, productRepo, taxRepo, clock)
	weightLotUC := catalog.NewWeightLotUseCase(lotRepo, productRepo, clock)
	taxUC := catalog.NewTaxUseCase(taxRepo, clock)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo, clock)
	brandUC := catalog.NewBrandUseCase(brandRepo, clock)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, movementRepo, clock)
	saleUC := sales.NewCreateSaleUseCase(txRunner, saleRepo, clock, sales.Config{
		WeightTaxPercent: cfg.Sales.WeightTaxPercent,
	})

	// PDF: recibo de venta para imprimir o enviar
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := sales.NewReceiptUseCase(
		saleRepo, variantRepo, lotRepo, productRepo, userRepo,
		receiptGenerator, cfg.Sales.StoreName,
	)

	// Caché Redis del dashboard; sin Redis el resumen se calcula siempre.
	var dashboardCache appanalytics.Cache = appanalytics.NoopCache{}
	if redisCache := rediscache.New(ctx, cfg.Redis, log.Zerolog()); redisCache != nil {
		defer redisCache.Close()
		dashboardCache = redisCache
	}
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, dashboardCache, clock, log.Zerolog())

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		VariantUC:   variantUC,
		WeightLotUC: weightLotUC,
		TaxUC:       taxUC,
		CategoryUC:  categoryUC,
		BrandUC:     brandUC,
		LedgerUC:    ledgerUC,
		SaleUC:      saleUC,
		ReceiptUC:   receiptUC,
		DashboardUC: dashboardUC,
		Clock:       clock,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
