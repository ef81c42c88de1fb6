package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Lecheria-api/internal/application/auth"
	"github.com/jhoicas/Lecheria-api/internal/application/collection"
	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/events"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/report"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Lecheria-api/internal/interfaces/http"
	"github.com/jhoicas/Lecheria-api/pkg/config"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer stores.Close()

	// Eventos de entregas: RabbitMQ si AMQP_URL está configurado; si no, no-op.
	var publisher collection.EventPublisher = events.Noop{}
	if cfg.AMQP.URL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log.Component("events"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	authUC := auth.NewAuthUseCase(stores.Members, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Enabled() {
		admin, created, err := authUC.EnsureAdmin(ctx, dto.SignupRequest{
			Name:      cfg.Admin.Name,
			AccountNo: cfg.Admin.AccountNo,
			Password:  cfg.Admin.Password,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("asegurar cuenta admin")
		}
		log.Info().Str("account_no", admin.AccountNo).Bool("creada", created).Msg("cuenta admin lista")
	}
	entryUC := collection.NewEntryUseCase(stores.Members, stores.Entries, stores.TxRunner, publisher, log.Component("entries"))
	summaryUC := collection.NewSummaryUseCase(stores.Members, stores.Entries, cfg.App.Location())
	exportUC := collection.NewExportUseCase(summaryUC, report.All()...)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lechería API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		EntryUC:   entryUC,
		SummaryUC: summaryUC,
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log.Component("http"),
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
