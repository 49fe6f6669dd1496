package v1

import (
	"github.com/vibe-gaming/newsletter/internal/service"
	"github.com/vibe-gaming/newsletter/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Newsletter API
// @version 1.0
// @description Newsletter subscription and campaign API

// @BasePath /api/v1

// @securityDefinitions.apikey OperatorAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
}

func NewHandler(services *service.Services, tokenManager auth.TokenManager) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initNewsletterRoutes(v1)
	h.initContactsRoutes(v1)
	h.initCampaignsRoutes(v1)
}
