package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vibe-gaming/newsletter/pkg/logger"
	"github.com/vibe-gaming/newsletter/pkg/newsletter"
	"go.uber.org/zap"
)

func (h *Handler) initNewsletterRoutes(api *gin.RouterGroup) {
	subscriptions := api.Group("/newsletter")
	{
		subscriptions.GET("/lists", h.getLists)
		subscriptions.POST("/subscribe", h.subscribe)
		subscriptions.POST("/unsubscribe", h.unsubscribe)
		subscriptions.POST("/resubscribe", h.operatorIdentityMiddleware, h.resubscribe)
		subscriptions.POST("/lists/add", h.operatorIdentityMiddleware, h.addToLists)
		subscriptions.POST("/lists/remove", h.operatorIdentityMiddleware, h.removeFromLists)
		subscriptions.PUT("/email", h.operatorIdentityMiddleware, h.updateEmailAddress)
	}
}

type listsResponse struct {
	Lists []string `json:"lists"`
}

type subscribeRequest struct {
	Email      string            `json:"email" binding:"required,email"`
	Lists      []string          `json:"lists" binding:"dive,listname"`
	Attributes map[string]string `json:"attributes" binding:"omitempty,dive,keys,contactattr,endkeys"`
}

type subscribeResponse struct {
	Success   bool  `json:"success"`
	ContactID int64 `json:"contact_id,omitempty"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type listsRequest struct {
	Email string   `json:"email" binding:"required,email"`
	Lists []string `json:"lists" binding:"required,min=1,dive,listname"`
}

type updateEmailRequest struct {
	OldEmail string `json:"old_email" binding:"required,email"`
	NewEmail string `json:"new_email" binding:"required,email,nefield=OldEmail"`
}

// @Summary Get Lists
// @Tags Newsletter
// @Description Names of the configured newsletter lists
// @ModuleID getLists
// @Produce  json
// @Success 200 {object} listsResponse
// @Router /newsletter/lists [get]
func (h *Handler) getLists(c *gin.Context) {
	c.JSON(http.StatusOK, listsResponse{Lists: h.services.Newsletter.ListNames()})
}

// @Summary Subscribe
// @Tags Newsletter
// @Description Create or update a contact and add it to the given lists
// @ModuleID subscribe
// @Accept  json
// @Produce  json
// @Param input body subscribeRequest true "Subscription"
// @Success 200 {object} subscribeResponse
// @Failure 400 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /newsletter/subscribe [post]
func (h *Handler) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	sub, err := h.services.Newsletter.Subscribe(c.Request.Context(), newsletter.SubscribeInput{
		Email:      req.Email,
		ListNames:  req.Lists,
		Attributes: req.Attributes,
	})
	if err != nil {
		providerErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, subscribeResponse{Success: sub.Subscribed, ContactID: sub.ContactID})
}

// @Summary Unsubscribe
// @Tags Newsletter
// @Description Blacklist a contact. List memberships are kept.
// @ModuleID unsubscribe
// @Accept  json
// @Produce  json
// @Param input body emailRequest true "Contact email"
// @Success 200 {object} statusResponse
// @Failure 400 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /newsletter/unsubscribe [post]
func (h *Handler) unsubscribe(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	ok, err := h.services.Newsletter.Unsubscribe(c.Request.Context(), req.Email)
	if err != nil {
		providerErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: ok})
}

// @Summary Resubscribe
// @Tags Newsletter
// @Security OperatorAuth
// @Description Clear the blacklist flag of a contact
// @ModuleID resubscribe
// @Accept  json
// @Produce  json
// @Param input body emailRequest true "Contact email"
// @Success 200 {object} statusResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /newsletter/resubscribe [post]
func (h *Handler) resubscribe(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	ok, err := h.services.Newsletter.Resubscribe(c.Request.Context(), req.Email)
	if err != nil {
		providerErrorResponse(c, err)
		return
	}

	logger.Info("contact resubscribed", zap.String("operator", getOperator(c)), zap.String("email", req.Email))
	c.JSON(http.StatusOK, statusResponse{Success: ok})
}

// @Summary Add To Lists
// @Tags Newsletter
// @Security OperatorAuth
// @Description Add a contact to lists, one provider call per list. Lists joined before a failure stay joined.
// @ModuleID addToLists
// @Accept  json
// @Produce  json
// @Param input body listsRequest true "Contact and lists"
// @Success 200 {object} statusResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /newsletter/lists/add [post]
func (h *Handler) addToLists(c *gin.Context) {
	var req listsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	ok, err := h.services.Newsletter.AddToLists(c.Request.Context(), req.Email, req.Lists)
	if err != nil {
		providerErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: ok})
}

// @Summary Remove From Lists
// @Tags Newsletter
// @Security OperatorAuth
// @Description Remove a contact from lists, one provider call per list
// @ModuleID removeFromLists
// @Accept  json
// @Produce  json
// @Param input body listsRequest true "Contact and lists"
// @Success 200 {object} statusResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /newsletter/lists/remove [post]
func (h *Handler) removeFromLists(c *gin.Context) {
	var req listsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	ok, err := h.services.Newsletter.RemoveFromLists(c.Request.Context(), req.Email, req.Lists)
	if err != nil {
		providerErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: ok})
}

// @Summary Update Email Address
// @Tags Newsletter
// @Security OperatorAuth
// @Description Set the EMAIL attribute of the contact found by old_email
// @ModuleID updateEmailAddress
// @Accept  json
// @Produce  json
// @Param input body updateEmailRequest true "Old and new email"
// @Success 200 {object} statusResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /newsletter/email [put]
func (h *Handler) updateEmailAddress(c *gin.Context) {
	var req updateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	ok, err := h.services.Newsletter.UpdateEmailAddress(c.Request.Context(), req.OldEmail, req.NewEmail)
	if err != nil {
		providerErrorResponse(c, err)
		return
	}

	logger.Info("contact email updated", zap.String("operator", getOperator(c)), zap.String("old_email", req.OldEmail))
	c.JSON(http.StatusOK, statusResponse{Success: ok})
}
