package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/security"
	"link1t-backend/pkg/validation"
)

const (
	msgUnauthorized      = "Unauthorized"
	msgMissingSlugOrData = "Missing slug or data"
	msgMissingSlug       = "Missing slug"
	msgAlreadyOwned      = "You already have a portfolio. Use PUT to update it."
	msgSlugTaken         = "Username already taken"
	msgSlugTakenByOther  = "Username already taken by another user"
	msgPortfolioNotFound = "Portfolio not found"

	maxSuggestions = 5
)

var slugUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

var validate = validation.New()

type portfolioUsecase struct {
	repo  domain.PortfolioRepository
	audit *security.SecurityLogger
	now   func() time.Time
}

type PortfolioOption func(*portfolioUsecase)

// WithClock overrides the time source used for created_at/updated_at
func WithClock(now func() time.Time) PortfolioOption {
	return func(uc *portfolioUsecase) { uc.now = now }
}

func NewPortfolioUsecase(repo domain.PortfolioRepository, audit *security.SecurityLogger, opts ...PortfolioOption) domain.PortfolioUsecase {
	uc := &portfolioUsecase{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *portfolioUsecase) timestamp() time.Time {
	// Postgres keeps microseconds; truncating keeps round-trips exact
	return uc.now().UTC().Truncate(time.Microsecond)
}

// GetOwn returns the caller's record, or nil when there is none
func (uc *portfolioUsecase) GetOwn(ctx context.Context, caller domain.CallerIdentity) (*domain.PortfolioRecord, error) {
	if caller.IsAnonymous() {
		return nil, apperror.Unauthorized(msgUnauthorized)
	}

	rec, err := uc.repo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return rec, nil
}

func (uc *portfolioUsecase) Create(ctx context.Context, caller domain.CallerIdentity, req *domain.SavePortfolioRequest) error {
	if caller.IsAnonymous() {
		return apperror.Unauthorized(msgUnauthorized)
	}

	data, err := decodeSaveRequest(req)
	if err != nil {
		return err
	}

	existing, err := uc.repo.GetByUserID(ctx, caller.UserID)
	switch {
	case err == nil:
		uc.audit.LogOwnershipConflict(caller.UserID, req.Slug, "already_owned")
		return apperror.OwnedConflict(msgAlreadyOwned, existing.Slug)
	case !errors.Is(err, domain.ErrNotFound):
		return apperror.Internal(err)
	}

	taken, err := uc.repo.SlugExists(ctx, req.Slug)
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		uc.audit.LogOwnershipConflict(caller.UserID, req.Slug, "slug_taken")
		return apperror.Conflict(msgSlugTaken)
	}

	now := uc.timestamp()
	rec := &domain.PortfolioRecord{
		Slug:      req.Slug,
		UserID:    caller.UserID,
		Data:      *data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The checks above race with concurrent creates; the unique
	// constraints in the store have the final word.
	switch err := uc.repo.Create(ctx, rec); {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrAlreadyOwned):
		uc.audit.LogOwnershipConflict(caller.UserID, req.Slug, "already_owned")
		slug := ""
		if existing, getErr := uc.repo.GetByUserID(ctx, caller.UserID); getErr == nil {
			slug = existing.Slug
		}
		return apperror.OwnedConflict(msgAlreadyOwned, slug)
	case errors.Is(err, domain.ErrSlugTaken):
		uc.audit.LogOwnershipConflict(caller.UserID, req.Slug, "slug_taken")
		return apperror.Conflict(msgSlugTaken)
	default:
		return apperror.Internal(err)
	}
}

func (uc *portfolioUsecase) Update(ctx context.Context, caller domain.CallerIdentity, req *domain.SavePortfolioRequest) error {
	if caller.IsAnonymous() {
		return apperror.Unauthorized(msgUnauthorized)
	}

	data, err := decodeSaveRequest(req)
	if err != nil {
		return err
	}

	owner, err := uc.repo.GetBySlug(ctx, req.Slug)
	switch {
	case err == nil && owner.UserID != caller.UserID:
		uc.audit.LogOwnershipConflict(caller.UserID, req.Slug, "slug_taken")
		return apperror.Conflict(msgSlugTakenByOther)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return apperror.Internal(err)
	}

	current, err := uc.repo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(msgPortfolioNotFound)
		}
		return apperror.Internal(err)
	}

	updatedAt := uc.timestamp()
	if updatedAt.Before(current.UpdatedAt) {
		updatedAt = current.UpdatedAt
	}

	rec := &domain.PortfolioRecord{
		Slug:      req.Slug,
		UserID:    caller.UserID,
		Data:      *data,
		CreatedAt: current.CreatedAt,
		UpdatedAt: updatedAt,
	}

	switch err := uc.repo.Update(ctx, rec); {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSlugTaken):
		uc.audit.LogOwnershipConflict(caller.UserID, req.Slug, "slug_taken")
		return apperror.Conflict(msgSlugTakenByOther)
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(msgPortfolioNotFound)
	default:
		return apperror.Internal(err)
	}
}

// Delete removes the caller's record; a missing record is not an error
func (uc *portfolioUsecase) Delete(ctx context.Context, caller domain.CallerIdentity) error {
	if caller.IsAnonymous() {
		return apperror.Unauthorized(msgUnauthorized)
	}
	if err := uc.repo.DeleteByUserID(ctx, caller.UserID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *portfolioUsecase) GetPublic(ctx context.Context, slug string) (*domain.PortfolioRecord, error) {
	if slug == "" {
		return nil, apperror.NotFound(msgPortfolioNotFound)
	}
	rec, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgPortfolioNotFound)
		}
		return nil, apperror.Internal(err)
	}
	return rec, nil
}

func (uc *portfolioUsecase) SlugExists(ctx context.Context, slug string) (bool, error) {
	if slug == "" {
		return false, apperror.BadRequest(msgMissingSlug)
	}
	exists, err := uc.repo.SlugExists(ctx, slug)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

// SuggestSlugs returns up to five free slugs derived from slug, checked in one batch
func (uc *portfolioUsecase) SuggestSlugs(ctx context.Context, slug string) ([]string, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, apperror.BadRequest(msgMissingSlug)
	}

	candidates := slugCandidates(slug)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	taken, err := uc.repo.SlugsTaken(ctx, candidates)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		if taken[c] {
			continue
		}
		out = append(out, c)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

func slugCandidates(slug string) []string {
	base := strings.Trim(slugUnsafeChars.ReplaceAllString(strings.TrimSpace(slug), "-"), "-")
	if len(base) > 50 {
		base = strings.TrimRight(base[:50], "-")
	}
	if base == "" {
		return nil
	}

	raw := []string{
		base,
		base + "-1",
		base + "-2",
		base + "-3",
		base + "-dev",
		base + "-portfolio",
		base + "-4",
		base + "-5",
		base + "-6",
		base + "-7",
	}
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if validation.IsValidSlug(c) {
			out = append(out, c)
		}
	}
	return out
}

// decodeSaveRequest validates the envelope and shape, then forces data.slug to the record slug
func decodeSaveRequest(req *domain.SavePortfolioRequest) (*domain.PortfolioData, error) {
	if req == nil {
		return nil, apperror.BadRequest(msgMissingSlugOrData)
	}
	raw := bytes.TrimSpace(req.Data)
	if req.Slug == "" || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, apperror.BadRequest(msgMissingSlugOrData)
	}

	if err := validate.Struct(req); err != nil {
		return nil, apperror.Invalid("Invalid username", validation.FormatValidationErrors(err))
	}

	problems, err := domain.ValidatePortfolioDocument(raw)
	if err != nil {
		return nil, apperror.BadRequest("Invalid portfolio data")
	}
	if len(problems) > 0 {
		return nil, apperror.Invalid("Invalid portfolio data", problems)
	}

	var data domain.PortfolioData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, apperror.BadRequest("Invalid portfolio data")
	}
	data.Slug = req.Slug
	return &data, nil
}
