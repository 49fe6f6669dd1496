package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vibe-gaming/newsletter/pkg/logger"
	"github.com/vibe-gaming/newsletter/pkg/newsletter"
	"go.uber.org/zap"
)

func (h *Handler) initCampaignsRoutes(api *gin.RouterGroup) {
	campaigns := api.Group("/campaigns", h.operatorIdentityMiddleware)
	campaigns.POST("", h.sendCampaign)
}

type sendCampaignRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	FromEmail   string     `json:"from_email" binding:"omitempty,email"`
	FromName    string     `json:"from_name"`
	Subject     string     `json:"subject" binding:"required"`
	HTMLContent string     `json:"html_content" binding:"required"`
	ReplyTo     string     `json:"reply_to" binding:"omitempty,email"`
	Lists       []string   `json:"lists" binding:"dive,listname"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// @Summary Send Campaign
// @Tags Campaigns
// @Security OperatorAuth
// @Description Create a scheduled email campaign. Every call creates a new campaign.
// @ModuleID sendCampaign
// @Accept  json
// @Produce  json
// @Param input body sendCampaignRequest true "Campaign"
// @Success 201 {object} statusResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /campaigns [post]
func (h *Handler) sendCampaign(c *gin.Context) {
	var req sendCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	input := newsletter.CampaignInput{
		Name:        req.Name,
		FromEmail:   req.FromEmail,
		FromName:    req.FromName,
		HTMLContent: req.HTMLContent,
		Subject:     req.Subject,
		ReplyTo:     req.ReplyTo,
		ListNames:   req.Lists,
	}
	if req.ScheduledAt != nil {
		input.ScheduledAt = *req.ScheduledAt
	}

	ok, err := h.services.Newsletter.SendCampaign(c.Request.Context(), input)
	if err != nil {
		providerErrorResponse(c, err)
		return
	}

	logger.Info("campaign created",
		zap.String("operator", getOperator(c)),
		zap.String("campaign", req.Name),
		zap.Strings("lists", req.Lists),
	)
	c.JSON(http.StatusCreated, statusResponse{Success: ok})
}
