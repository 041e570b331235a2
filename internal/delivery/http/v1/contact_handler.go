package v1

import (
	"link1t-backend/internal/delivery/http/response"
	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/logger"
	"link1t-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{contactUC: contactUC}

	public.POST("/contact", handler.Send)
}

// Send godoc
// @Summary      Send a contact message
// @Description  Relays the contact page form to the site owner's inbox over SMTP. Answers 503 when mail is not configured.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        message  body      domain.ContactRequest  true  "Contact form"
// @Success      200      {object}  response.SuccessBody
// @Failure      400      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Failure      503      {object}  response.ErrorBody
// @Router       /contact [post]
func (h *ContactHandler) Send(c *gin.Context) {
	var msg domain.ContactRequest
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.Error(apperror.Invalid("Validation failed", validation.FormatValidationErrors(err)))
		return
	}

	ctx := c.Request.Context()
	if err := h.contactUC.SendContactMessage(ctx, &msg); err != nil {
		c.Error(err)
		return
	}

	logger.Log.InfoContext(ctx, "contact message relayed", "request_id", c.GetString(domain.KeyRequestID))
	response.Success(c)
}
