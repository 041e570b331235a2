package usecase

import (
	"context"

	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/email"
)

type contactUsecase struct {
	emailService *email.EmailService
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(emailService *email.EmailService) domain.ContactUsecase {
	return &contactUsecase{
		emailService: emailService,
	}
}

// SendContactMessage validates the contact request and sends the email
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return apperror.BadRequest("Invalid request body")
	}

	req.Trim()
	if missing := req.Missing(); len(missing) > 0 {
		return apperror.Invalid("Validation failed", missing)
	}

	if uc.emailService == nil || !uc.emailService.IsConfigured() {
		return apperror.Unavailable("Contact service temporarily unavailable", nil)
	}

	emailData := email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
	}

	if err := uc.emailService.SendContactEmail(emailData); err != nil {
		return apperror.InternalMessage("Failed to send message", err)
	}

	return nil
}
