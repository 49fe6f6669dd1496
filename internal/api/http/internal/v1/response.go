package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vibe-gaming/newsletter/pkg/newsletter"
)

type statusResponse struct {
	Success bool `json:"success"`
}

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

// providerErrorResponse answers 400 for unknown list names and 502 for
// failures reported by the newsletter provider.
func providerErrorResponse(c *gin.Context, err error) {
	if errors.Is(err, newsletter.ErrConfiguration) {
		errorResponse(c, http.StatusBadRequest, ListNotConfiguredCode)
		return
	}

	code, ok := kindCodes[newsletter.KindOf(err)]
	if !ok {
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	errorResponse(c, http.StatusBadGateway, code)
}

func bindErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		validationErrorResponse(c, verr)
		return
	}

	errorResponse(c, http.StatusBadRequest, InvalidRequestCode)
}

func validationErrorResponse(c *gin.Context, verr validator.ValidationErrors) {
	out := make([]ValidationError, len(verr))
	for i, ferr := range verr {
		out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
	}
	response := ValidationErrorStruct{
		ErrorCode:    6000,
		ErrorMessage: "Validation error",
	}
	response.Errors = out
	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %v", value)
	case "max":
		return fmt.Sprintf("Maximum length is %v", value)
	case "listname":
		return "List name may contain letters, digits, '.', '_' and '-'"
	case "contactattr":
		return "Attribute name is reserved or malformed"
	}
	return tag
}
