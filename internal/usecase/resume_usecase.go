package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"link1t-backend/internal/domain"
	"link1t-backend/pkg/ai"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/logger"
	"link1t-backend/pkg/security"
)

// MaxResumeSize is the largest résumé document accepted for parsing
const MaxResumeSize = 5 << 20

type resumeUsecase struct {
	extractor domain.ResumeExtractor
	audit     *security.SecurityLogger
}

func NewResumeUsecase(extractor domain.ResumeExtractor, audit *security.SecurityLogger) domain.ResumeUsecase {
	return &resumeUsecase{extractor: extractor, audit: audit}
}

// Parse forwards one document to the model and returns its JSON answer.
// The answer is only checked for JSON syntax; callers treat every field as optional.
func (uc *resumeUsecase) Parse(ctx context.Context, file *domain.ResumeFile) (json.RawMessage, error) {
	if uc.extractor == nil || !uc.extractor.Configured() {
		return nil, apperror.InternalMessage("OpenRouter API key not configured", nil)
	}
	if file == nil || len(file.Content) == 0 {
		return nil, apperror.BadRequest("No file provided")
	}
	if len(file.Content) > MaxResumeSize {
		return nil, apperror.BadRequest("File too large. Maximum size is 5MB")
	}

	if err := security.ValidateDocument(file.Filename, file.Content); err != nil {
		if errors.Is(err, security.ErrContentMismatch) {
			return nil, apperror.BadRequest("File content does not match its extension")
		}
		return nil, apperror.BadRequest("Unsupported file type. Please upload a PDF, DOC, DOCX or TXT file")
	}

	mimeType := security.DocumentMIMEType(file.Filename, file.ContentType)

	text, err := uc.extractor.Extract(ctx, resumeExtractionPrompt, file.Filename, mimeType, file.Content)
	if err != nil {
		return nil, mapExtractError(err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, apperror.InternalMessage("No response from AI model", ai.ErrEmptyResponse)
	}

	cleaned := ai.StripCodeFence(text)
	if !json.Valid([]byte(cleaned)) {
		logger.Log.ErrorContext(ctx, "Failed to parse AI response", "raw", text)
		uc.audit.Log(security.SecurityEvent{
			Event:   security.EventAIParseFailed,
			Details: map[string]any{"filename": file.Filename, "length": len(text)},
		})
		return nil, apperror.InternalMessage("Failed to parse AI response as JSON", nil)
	}

	return json.RawMessage(cleaned), nil
}

func mapExtractError(err error) error {
	var upstream *ai.UpstreamError
	switch {
	case errors.As(err, &upstream):
		msg := upstream.Message
		if msg == "" {
			msg = "Failed to parse resume"
		}
		logger.Log.Error("Resume extraction upstream error", "status", upstream.Status, "error", upstream.Message)
		return apperror.Upstream(upstream.Status, msg, err)
	case errors.Is(err, ai.ErrEmptyResponse):
		return apperror.InternalMessage("No response from AI model", err)
	default:
		return apperror.InternalMessage("Failed to process resume", err)
	}
}
