package response

import (
	"net/http"

	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON body of every failed API call
type ErrorBody struct {
	Error        string   `json:"error"`
	Code         string   `json:"code"`
	ExistingSlug string   `json:"existingSlug,omitempty"`
	Details      []string `json:"details,omitempty"`
	RequestID    string   `json:"request_id,omitempty"`
}

// SuccessBody is the confirmation returned by mutations
type SuccessBody struct {
	Success bool `json:"success"`
}

// RequestID returns the id assigned by the RequestID middleware
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get(domain.KeyRequestID)
	idStr, _ := reqID.(string)
	return idStr
}

// Success sends {"success": true}
func Success(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessBody{Success: true})
}

// Error sends the JSON body for e
func Error(c *gin.Context, e *apperror.AppError) {
	c.JSON(e.Status, ErrorBody{
		Error:        e.Message,
		Code:         string(e.Code),
		ExistingSlug: e.ExistingSlug,
		Details:      e.Details,
		RequestID:    RequestID(c),
	})
}
