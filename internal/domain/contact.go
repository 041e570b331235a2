package domain

import (
	"context"
	"strings"
)

// ContactRequest is a message from the public contact page
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=200,no_emoji"`
	Email   string `json:"email" binding:"required,loose_email"`
	Subject string `json:"subject" binding:"required,max=300"`
	Message string `json:"message" binding:"required,max=5000"`
}

// Trim strips surrounding whitespace from every field in place
func (r *ContactRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

// Missing lists "X is required" for each blank field, in form order.
// Binding tags let whitespace-only values through, so call Trim first.
func (r *ContactRequest) Missing() []string {
	var missing []string
	for _, f := range []struct{ label, value string }{
		{"Name", r.Name},
		{"Email", r.Email},
		{"Subject", r.Subject},
		{"Message", r.Message},
	} {
		if f.value == "" {
			missing = append(missing, f.label+" is required")
		}
	}
	return missing
}

type ContactUsecase interface {
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
