package memory

import (
	"context"
	"encoding/json"
	"sync"

	"link1t-backend/internal/domain"
)

// PortfolioRepository keeps records in process memory. It enforces the same
// slug and owner uniqueness as the database backends.
type PortfolioRepository struct {
	mu     sync.RWMutex
	byUser map[string]*domain.PortfolioRecord // user_id -> record
	bySlug map[string]string                  // slug -> user_id
}

func NewPortfolioRepository() *PortfolioRepository {
	return &PortfolioRepository{
		byUser: make(map[string]*domain.PortfolioRecord),
		bySlug: make(map[string]string),
	}
}

func (r *PortfolioRepository) GetByUserID(_ context.Context, userID string) (*domain.PortfolioRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(rec)
}

func (r *PortfolioRepository) GetBySlug(_ context.Context, slug string) (*domain.PortfolioRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(r.byUser[userID])
}

func (r *PortfolioRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bySlug[slug]
	return ok, nil
}

func (r *PortfolioRepository) SlugsTaken(_ context.Context, slugs []string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	taken := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		if _, ok := r.bySlug[s]; ok {
			taken[s] = true
		}
	}
	return taken, nil
}

func (r *PortfolioRepository) Create(_ context.Context, rec *domain.PortfolioRecord) error {
	stored, err := clone(rec)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[rec.UserID]; ok {
		return domain.ErrAlreadyOwned
	}
	if _, ok := r.bySlug[rec.Slug]; ok {
		return domain.ErrSlugTaken
	}
	r.byUser[rec.UserID] = stored
	r.bySlug[rec.Slug] = rec.UserID
	return nil
}

func (r *PortfolioRepository) Update(_ context.Context, rec *domain.PortfolioRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byUser[rec.UserID]
	if !ok {
		return domain.ErrNotFound
	}
	if owner, taken := r.bySlug[rec.Slug]; taken && owner != rec.UserID {
		return domain.ErrSlugTaken
	}

	data, err := cloneData(rec.Data)
	if err != nil {
		return err
	}

	delete(r.bySlug, existing.Slug)
	existing.Slug = rec.Slug
	existing.Data = data
	existing.UpdatedAt = rec.UpdatedAt
	r.bySlug[rec.Slug] = rec.UserID
	return nil
}

func (r *PortfolioRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.byUser[userID]; ok {
		delete(r.bySlug, rec.Slug)
		delete(r.byUser, userID)
	}
	return nil
}

func (r *PortfolioRepository) Ping(context.Context) error {
	return nil
}

// clone deep-copies a record so callers never alias stored state
func clone(rec *domain.PortfolioRecord) (*domain.PortfolioRecord, error) {
	out := *rec
	data, err := cloneData(rec.Data)
	if err != nil {
		return nil, err
	}
	out.Data = data
	return &out, nil
}

func cloneData(d domain.PortfolioData) (domain.PortfolioData, error) {
	var out domain.PortfolioData
	raw, err := json.Marshal(d)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
