package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"farmstand/internal/adapter/api"
	"farmstand/internal/adapter/api/handler"
	apimiddleware "farmstand/internal/adapter/api/middleware"
	"farmstand/internal/adapter/api/router"
	"farmstand/internal/adapter/storage/backend"
	"farmstand/internal/adapter/storage/memory"
	"farmstand/internal/infrastructure/mail"
	"farmstand/internal/usecase"
	"farmstand/pkg/config"
	"farmstand/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	store, err := backend.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build storage backend: %v", err)
	}

	// A backend that cannot come up is fatal; serving requests against a
	// broken store would fail one by one instead of loudly here.
	if err := store.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.StorageBackend, err)
	}
	defer store.Close()
	logger.Info("storage backend %s ready", cfg.StorageBackend)

	if cfg.Environment == "development" && cfg.StorageBackend == config.BackendMemory {
		if err := memory.Seed(ctx, store); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		logger.Info("seeded demo catalog")
	}

	var mailer mail.Mailer = mail.NoopMailer{}
	if cfg.SendgridAPIKey != "" {
		mailer = mail.NewSendgridMailer(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.AppBaseURL)
	}

	jwtExpiry := time.Duration(cfg.JWTExpiry) * time.Second
	authUseCase := usecase.NewAuthUseCase(store, mailer, cfg.JWTSecret, jwtExpiry)
	catalogUseCase := usecase.NewCatalogUseCase(store)
	vendorUseCase := usecase.NewVendorUseCase(store)
	orderUseCase := usecase.NewOrderUseCase(store)
	reviewUseCase := usecase.NewReviewUseCase(store)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(cfg.JWTSecret)

	router.Setup(e, router.Handlers{
		Auth:     handler.NewAuthHandler(authUseCase),
		Category: handler.NewCategoryHandler(catalogUseCase),
		Product:  handler.NewProductHandler(catalogUseCase),
		Vendor:   handler.NewVendorHandler(vendorUseCase),
		Order:    handler.NewOrderHandler(orderUseCase),
		Review:   handler.NewReviewHandler(reviewUseCase),
		Health:   handler.NewHealthHandler(cfg.StorageBackend),
	}, authMiddleware)

	logger.Info("starting server on port %s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
