package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initContactsRoutes(api *gin.RouterGroup) {
	contacts := api.Group("/contacts", h.operatorIdentityMiddleware)
	{
		contacts.GET("/:email", h.getContact)
		contacts.GET("/:email/subscribed", h.isSubscribed)
	}
}

type contactResponse struct {
	ID               int64          `json:"id"`
	Email            string         `json:"email"`
	EmailBlacklisted bool           `json:"email_blacklisted"`
	ListIDs          []int64        `json:"list_ids"`
	Attributes       map[string]any `json:"attributes,omitempty"`
}

type subscribedResponse struct {
	Subscribed bool `json:"subscribed"`
}

// @Summary Get Contact
// @Tags Contacts
// @Security OperatorAuth
// @Description Fetch a contact from the newsletter provider
// @ModuleID getContact
// @Produce  json
// @Param email path string true "Contact email"
// @Success 200 {object} contactResponse
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /contacts/{email} [get]
func (h *Handler) getContact(c *gin.Context) {
	contact, err := h.services.Newsletter.GetContact(c.Request.Context(), c.Param("email"))
	if err != nil {
		providerErrorResponse(c, err)
		return
	}
	if contact == nil {
		errorResponse(c, http.StatusNotFound, ContactNotFoundCode)
		return
	}

	c.JSON(http.StatusOK, contactResponse{
		ID:               contact.ID,
		Email:            contact.Email,
		EmailBlacklisted: contact.EmailBlacklisted,
		ListIDs:          contact.ListIDs,
		Attributes:       contact.Attributes,
	})
}

// @Summary Is Subscribed
// @Tags Contacts
// @Security OperatorAuth
// @Description Whether the contact is subscribed, optionally to one list
// @ModuleID isSubscribed
// @Produce  json
// @Param email path string true "Contact email"
// @Param list query string false "List name"
// @Success 200 {object} subscribedResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /contacts/{email}/subscribed [get]
func (h *Handler) isSubscribed(c *gin.Context) {
	subscribed, err := h.services.Newsletter.IsSubscribed(c.Request.Context(), c.Param("email"), c.Query("list"))
	if err != nil {
		providerErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, subscribedResponse{Subscribed: subscribed})
}
