package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/vibe-gaming/newsletter/internal/api/http"
	"github.com/vibe-gaming/newsletter/internal/config"
	"github.com/vibe-gaming/newsletter/internal/server"
	"github.com/vibe-gaming/newsletter/internal/service"
	"github.com/vibe-gaming/newsletter/pkg/auth"
	"github.com/vibe-gaming/newsletter/pkg/logger"
	"github.com/vibe-gaming/newsletter/pkg/newsletter"
	"github.com/vibe-gaming/newsletter/pkg/newsletter/sendinblue"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables or CONFIG_PATH
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("starting newsletter api")
	appLogger.Debug("debug messages are enabled")

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		return
	}

	lists := newsletter.NewListCollection(cfg.Newsletter.Lists)
	provider := sendinblue.NewProvider(
		&http.Client{Timeout: cfg.Newsletter.Timeout},
		lists,
		sendinblue.Configuration{
			APIKey:  cfg.Newsletter.APIKey,
			BaseURL: cfg.Newsletter.BaseURL,
		},
	)
	appLogger.Info("newsletter provider ready", zap.Strings("lists", lists.Names()))

	// Services & API Handlers
	services := service.NewServices(service.Deps{
		Config:   cfg,
		Provider: provider,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager)

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
