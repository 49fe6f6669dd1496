package apiHttp

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"

	"github.com/vibe-gaming/newsletter/pkg/auth"
	"github.com/vibe-gaming/newsletter/pkg/limiter"
	"github.com/vibe-gaming/newsletter/pkg/logger"
	"github.com/vibe-gaming/newsletter/pkg/validator"

	internalV1 "github.com/vibe-gaming/newsletter/internal/api/http/internal/v1"
	"github.com/vibe-gaming/newsletter/internal/config"
	"github.com/vibe-gaming/newsletter/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
}

func NewHandlers(services *service.Services, tokenManager auth.TokenManager) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	if err := router.SetTrustedProxies(cfg.HttpServer.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware,
		requestTimeout(cfg.HttpServer.RequestTimeout),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
