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
	goredis "github.com/redis/go-redis/v9"

	"github.com/invorya/lotes-api/internal/application/inventory"
	infrakafka "github.com/invorya/lotes-api/internal/infrastructure/kafka"
	"github.com/invorya/lotes-api/internal/infrastructure/postgres"
	infraredis "github.com/invorya/lotes-api/internal/infrastructure/redis"
	httpRouter "github.com/invorya/lotes-api/internal/interfaces/http"
	"github.com/invorya/lotes-api/pkg/config"
	"github.com/invorya/lotes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
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

	variantRepo := postgres.NewVariantRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	adjRepo := postgres.NewAdjustmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de proyección de stock (opcional: REDIS_ADDR vacío la desactiva)
	var cache inventory.StockCache
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		cache = infraredis.NewStockCache(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de stock habilitada")
	}

	// Publicación de movimientos para reportes (opcional: sin brokers se desactiva)
	var publisher inventory.MovementPublisher
	var kafkaPublisher *infrakafka.MovementPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = infrakafka.NewMovementPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher = kafkaPublisher
		defer func() { _ = kafkaPublisher.Close() }()
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("eventos de movimientos habilitados")
	}

	ledgerUC := inventory.NewLedgerUseCase(txRunner, variantRepo, lotRepo, movRepo, adjRepo, cache, publisher)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if !registerSwagger(app, "./docs/swagger.json") {
		log.Warn().Msg("docs/swagger.json no encontrado, UI de documentación deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerUC,
		JWTSecret: cfg.JWT.Secret,
	})

	// Apagado limpio con SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("apagando servidor")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}

// registerSwagger monta la UI de documentación solo si el archivo existe: el
// middleware hace panic con un FilePath inexistente y el servidor debe poder
// arrancar sin él. Devuelve si quedó montada.
func registerSwagger(app *fiber.App, filePath string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Lotes API",
	}))
	return true
}
