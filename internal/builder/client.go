package builder

import (
	"context"
	"encoding/json"
	"fmt"

	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"
)

// Client is what the builder needs from the portfolio API
type Client interface {
	// GetOwn returns nil when the caller has no portfolio yet
	GetOwn(ctx context.Context) (*domain.PortfolioRecord, error)
	Create(ctx context.Context, slug string, data *domain.PortfolioData) error
	Update(ctx context.Context, slug string, data *domain.PortfolioData) error
	ParseResume(ctx context.Context, file *domain.ResumeFile) (*domain.ParsedResumeData, error)
}

// LocalClient drives the usecases directly for one caller, without HTTP
type LocalClient struct {
	Portfolios domain.PortfolioUsecase
	Resumes    domain.ResumeUsecase
	Caller     domain.CallerIdentity
}

func (c *LocalClient) GetOwn(ctx context.Context) (*domain.PortfolioRecord, error) {
	return c.Portfolios.GetOwn(ctx, c.Caller)
}

func (c *LocalClient) Create(ctx context.Context, slug string, data *domain.PortfolioData) error {
	req, err := saveRequest(slug, data)
	if err != nil {
		return err
	}
	return c.Portfolios.Create(ctx, c.Caller, req)
}

func (c *LocalClient) Update(ctx context.Context, slug string, data *domain.PortfolioData) error {
	req, err := saveRequest(slug, data)
	if err != nil {
		return err
	}
	return c.Portfolios.Update(ctx, c.Caller, req)
}

func (c *LocalClient) ParseResume(ctx context.Context, file *domain.ResumeFile) (*domain.ParsedResumeData, error) {
	if c.Resumes == nil {
		return nil, apperror.InternalMessage("Resume parsing is not available", nil)
	}
	raw, err := c.Resumes.Parse(ctx, file)
	if err != nil {
		return nil, err
	}
	return decodeParsed(raw)
}

func saveRequest(slug string, data *domain.PortfolioData) (*domain.SavePortfolioRequest, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	return &domain.SavePortfolioRequest{Slug: slug, Data: raw}, nil
}

// decodeParsed is lenient: the model may return fields with unexpected types,
// and anything that does not fit is dropped rather than failing the prefill.
func decodeParsed(raw json.RawMessage) (*domain.ParsedResumeData, error) {
	var parsed domain.ParsedResumeData
	if err := json.Unmarshal(raw, &parsed); err == nil {
		return &parsed, nil
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, apperror.InternalMessage("Failed to parse AI response as JSON", err)
	}

	field := func(name string, dst any) {
		if v, ok := loose[name]; ok {
			_ = json.Unmarshal(v, dst)
		}
	}
	field("name", &parsed.Name)
	field("title", &parsed.Title)
	field("email", &parsed.Email)
	field("subtitle", &parsed.Subtitle)
	field("bio", &parsed.Bio)
	field("socialLinks", &parsed.SocialLinks)
	field("experiences", &parsed.Experiences)
	field("projects", &parsed.Projects)
	field("skills", &parsed.Skills)
	return &parsed, nil
}
