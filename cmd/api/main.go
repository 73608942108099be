package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/labtrack-api/internal/application/ledger"
	"github.com/jhoicas/labtrack-api/internal/application/usecase"
	"github.com/jhoicas/labtrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/labtrack-api/internal/interfaces/http"
	"github.com/jhoicas/labtrack-api/pkg/config"
	"github.com/jhoicas/labtrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.Log.Level)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	labRepo := postgres.NewLabRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	itemUnitRepo := postgres.NewItemUnitRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	systemRepo := postgres.NewSystemRepository(pool)
	componentRepo := postgres.NewComponentRepository(pool)
	archiveRepo := postgres.NewArchiveRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	procurementUC := ledger.NewProcurementUseCase(txRunner, purchaseRepo, itemRepo, vendorRepo)
	allocationUC := ledger.NewAllocationUseCase(txRunner)
	retirementUC := ledger.NewRetirementUseCase(txRunner, archiveRepo)

	labUC := usecase.NewLabUseCase(labRepo, itemRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, categoryRepo, brandRepo, itemUnitRepo)
	systemUC := usecase.NewSystemUseCase(systemRepo, componentRepo, allocationUC)
	catalogUC := usecase.NewCatalogUseCase(categoryRepo, brandRepo, vendorRepo, itemRepo, purchaseRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		LabUC:       labUC,
		ItemUC:      itemUC,
		SystemUC:    systemUC,
		CatalogUC:   catalogUC,
		Procurement: procurementUC,
		Allocation:  allocationUC,
		Retirement:  retirementUC,
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
