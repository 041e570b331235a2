// Package builder models the portfolio builder workflow as a state machine
// over a single draft document.
package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"link1t-backend/internal/domain"
)

type State string

const (
	StateLoading  State = "loading"
	StateExisting State = "existing"
	StateMethod   State = "method"
	StateForm     State = "form"
	StateSaved    State = "saved"
)

var (
	ErrSubmitInFlight = errors.New("a submit is already in progress")
	ErrNoDraft        = errors.New("no draft to edit")
)

// TransitionError is returned when an action is not allowed in the current state
type TransitionError struct {
	Action string
	State  State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s in state %q", e.Action, e.State)
}

type Options struct {
	// Username seeds the slug of new drafts
	Username string
	// BaseURL is prefixed to the slug to build the public link
	BaseURL string
}

// Builder is safe for concurrent use. Only one Submit can be outstanding.
type Builder struct {
	client Client
	opts   Options

	mu         sync.Mutex
	state      State
	existing   *domain.PortfolioRecord
	draft      *domain.PortfolioData
	editMode   bool
	submitting bool
	publicURL  string
	lastErr    error
}

func New(client Client, opts Options) *Builder {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Builder{client: client, opts: opts, state: StateLoading}
}

func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// EditMode reports whether the draft came from an existing record
func (b *Builder) EditMode() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editMode
}

// Existing returns the caller's stored record, if Load found one
func (b *Builder) Existing() *domain.PortfolioRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.existing
}

// LastError is the most recent failure reported by the API, if any
func (b *Builder) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Load checks whether the caller already owns a portfolio.
// A failed lookup falls back to the method choice.
func (b *Builder) Load(ctx context.Context) (State, error) {
	b.mu.Lock()
	if b.state != StateLoading {
		defer b.mu.Unlock()
		return b.state, &TransitionError{Action: "load", State: b.state}
	}
	b.mu.Unlock()

	rec, err := b.client.GetOwn(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
	if err == nil && rec != nil {
		b.existing = rec
		b.state = StateExisting
	} else {
		b.state = StateMethod
	}
	return b.state, nil
}

// Edit opens the stored record in the form
func (b *Builder) Edit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateExisting && b.state != StateSaved {
		return &TransitionError{Action: "edit", State: b.state}
	}
	if b.existing == nil {
		return ErrNoDraft
	}
	draft, err := cloneDraft(&b.existing.Data)
	if err != nil {
		return err
	}
	if draft.Slug == "" {
		draft.Slug = b.existing.Slug
	}
	b.draft = draft
	b.editMode = true
	b.state = StateForm
	return nil
}

// ShareURL returns the public link of the stored or just-saved portfolio
func (b *Builder) ShareURL() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.state == StateSaved:
		return b.publicURL, nil
	case b.state == StateExisting && b.existing != nil:
		return b.PublicURL(b.existing.Slug), nil
	default:
		return "", &TransitionError{Action: "share", State: b.state}
	}
}

// PublicURL builds the public link for slug
func (b *Builder) PublicURL(slug string) string {
	return b.opts.BaseURL + "/" + slug
}

// FillManually starts a blank draft
func (b *Builder) FillManually() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateMethod {
		return &TransitionError{Action: "fill manually", State: b.state}
	}
	b.draft = BlankDraft(b.opts.Username)
	b.editMode = false
	b.state = StateForm
	return nil
}

// UploadResume parses file and opens the form prefilled with the result.
// On failure the builder stays in the method state.
func (b *Builder) UploadResume(ctx context.Context, file *domain.ResumeFile) error {
	b.mu.Lock()
	if b.state != StateMethod {
		defer b.mu.Unlock()
		return &TransitionError{Action: "upload resume", State: b.state}
	}
	b.mu.Unlock()

	parsed, err := b.client.ParseResume(ctx, file)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
	if err != nil {
		return err
	}
	if b.state != StateMethod {
		return &TransitionError{Action: "upload resume", State: b.state}
	}
	b.draft = PrefillDraft(b.opts.Username, parsed)
	b.editMode = false
	b.state = StateForm
	return nil
}

// Draft returns a copy of the current draft
func (b *Builder) Draft() (*domain.PortfolioData, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.draft == nil {
		return nil, ErrNoDraft
	}
	return cloneDraft(b.draft)
}

// Mutate applies fn to the draft in place. Allowed only in the form state.
func (b *Builder) Mutate(fn func(d *domain.PortfolioData)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateForm {
		return &TransitionError{Action: "edit draft", State: b.state}
	}
	if b.submitting {
		return ErrSubmitInFlight
	}
	fn(b.draft)
	return nil
}

// Back leaves the form for the screen it was opened from
func (b *Builder) Back() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateForm {
		return &TransitionError{Action: "go back", State: b.state}
	}
	if b.submitting {
		return ErrSubmitInFlight
	}
	if b.existing != nil {
		b.state = StateExisting
	} else {
		b.state = StateMethod
	}
	return nil
}

// Submit validates the draft and saves it. It returns a *ValidationError
// listing every violated rule without calling the API.
func (b *Builder) Submit(ctx context.Context) (string, error) {
	b.mu.Lock()
	if b.state != StateForm {
		defer b.mu.Unlock()
		return "", &TransitionError{Action: "submit", State: b.state}
	}
	if b.submitting {
		b.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	if problems := Validate(b.draft); len(problems) > 0 {
		b.mu.Unlock()
		return "", &ValidationError{Problems: problems}
	}
	draft, err := cloneDraft(b.draft)
	if err != nil {
		b.mu.Unlock()
		return "", err
	}
	editMode := b.editMode
	b.submitting = true
	b.mu.Unlock()

	if editMode {
		err = b.client.Update(ctx, draft.Slug, draft)
	} else {
		err = b.client.Create(ctx, draft.Slug, draft)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitting = false
	b.lastErr = err
	if err != nil {
		return "", err
	}

	b.existing = &domain.PortfolioRecord{Slug: draft.Slug, Data: *draft}
	b.publicURL = b.PublicURL(draft.Slug)
	b.state = StateSaved
	return b.publicURL, nil
}
