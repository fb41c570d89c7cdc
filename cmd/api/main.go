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

	"github.com/gestorlite/erp-api/internal/application/auth"
	appinv "github.com/gestorlite/erp-api/internal/application/inventory"
	"github.com/gestorlite/erp-api/internal/application/orders"
	"github.com/gestorlite/erp-api/internal/application/usecase"
	infrapdf "github.com/gestorlite/erp-api/internal/infrastructure/pdf"
	"github.com/gestorlite/erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestorlite/erp-api/internal/interfaces/http"
	"github.com/gestorlite/erp-api/pkg/config"
	"github.com/gestorlite/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("fifo_ativo", cfg.Estoque.FIFOAtivo).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	lotRepo := postgres.NewStockLotRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	consumptionRepo := postgres.NewLotConsumptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := appinv.NewRegisterMovementUseCase(txRunner, productRepo)
	balanceUC := appinv.NewBalanceUseCase(lotRepo, movementRepo, productRepo)
	reconcileUC := appinv.NewReconcileUseCase(txRunner, orderRepo, movementRepo, consumptionRepo, lotRepo, log)

	orderUC := orders.NewOrderUseCase(txRunner, registerMovementUC, orderRepo, partnerRepo, productRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderPDFUC := orders.NewPDFUseCase(orderRepo, partnerRepo, productRepo, pdfGenerator)

	productUC := usecase.NewProductUseCase(productRepo)
	partnerUC := usecase.NewPartnerUseCase(partnerRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GestorLite API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		PartnerUC:        partnerUC,
		ExpenseUC:        expenseUC,
		OrderUC:          orderUC,
		OrderPDFUC:       orderPDFUC,
		RegisterMovement: registerMovementUC,
		BalanceUC:        balanceUC,
		ReconcileUC:      reconcileUC,
		AuthUC:           authUC,
		LotRepo:          lotRepo,
		MovementRepo:     movementRepo,
		JWTSecret:        cfg.JWT.Secret,
		FIFODefault:      cfg.Estoque.FIFOAtivo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
