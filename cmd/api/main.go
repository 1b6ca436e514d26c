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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/pos-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// storage agrupa los puertos de persistencia según el backend elegido.
type storage struct {
	tx        sales.TxRunner
	products  repository.ProductRepository
	sales     repository.SaleRepository
	movements repository.StockMovementRepository
	ping      func(ctx context.Context) error
}

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

	var store storage
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgresStorage(pool, cfg.Sales.TxTimeout)
		log.Info().Msg("persistencia: PostgreSQL")
	} else {
		mem := memory.NewStore(cfg.Sales.TxTimeout)
		store = storage{
			tx:        mem,
			products:  mem.Products(),
			sales:     mem.Sales(),
			movements: mem.Movements(),
			ping:      func(context.Context) error { return nil },
		}
		log.Warn().Msg("DB no configurada: persistencia en memoria, los datos se pierden al reiniciar")
	}

	var carts repository.CartStore
	cartsPing := func(context.Context) error { return nil }
	if cfg.Redis.Addr != "" {
		client := infraredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		redisCarts := infraredis.NewCartStore(client, "pos", cfg.Redis.CartTTL)
		if err := redisCarts.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		carts = redisCarts
		cartsPing = redisCarts.Ping
	} else {
		carts = memory.NewCartStore()
		log.Warn().Msg("REDIS_ADDR vacío: carros en memoria del proceso")
	}

	ledger := sales.NewStockLedger(sales.NewBundleResolver(), cfg.Sales.StrictComponentStock, log.Component("stock_ledger"))
	cartUC := sales.NewCartUseCase(carts, store.products, cfg.Sales.TaxRate)
	finalizeUC := sales.NewFinalizeSaleUseCase(carts, store.tx, ledger, cfg.Sales.TaxRate, log.Component("finalize_sale"))
	refundUC := sales.NewRefundSaleUseCase(store.tx, ledger, cfg.Sales.TaxRate, log.Component("refund_sale"))
	queryUC := sales.NewSaleQueryUseCase(store.sales, store.movements)
	receiptUC := sales.NewReceiptPDFUseCase(store.sales, infrapdf.NewTicketGenerator(), sales.ReceiptHeader{
		StoreName: cfg.Sales.StoreName,
		TaxID:     cfg.Sales.StoreTaxID,
		Address:   cfg.Sales.StoreAddress,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "service": cfg.App.Name, "db": "ok", "carts": "ok"}
		code := fiber.StatusOK
		if err := store.ping(c.Context()); err != nil {
			status["db"], status["status"], code = err.Error(), "degraded", fiber.StatusServiceUnavailable
		}
		if err := cartsPing(c.Context()); err != nil {
			status["carts"], status["status"], code = err.Error(), "degraded", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(status)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Cart:      cartUC,
		Finalize:  finalizeUC,
		Refund:    refundUC,
		Query:     queryUC,
		Receipt:   receiptUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log.Component("http"),
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

func postgresStorage(pool *pgxpool.Pool, txTimeout time.Duration) storage {
	return storage{
		tx:        postgres.NewTxRunner(pool, txTimeout),
		products:  postgres.NewProductRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		ping:      pool.Ping,
	}
}
