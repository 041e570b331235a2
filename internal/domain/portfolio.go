package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Platform identifies the kind of a social link
type Platform string

const (
	PlatformGitHub   Platform = "github"
	PlatformLinkedIn Platform = "linkedin"
	PlatformTwitter  Platform = "twitter"
	PlatformLeetCode Platform = "leetcode"
	PlatformYouTube  Platform = "youtube"
	PlatformEmail    Platform = "email"
	PlatformOther    Platform = "other"
)

type SocialLink struct {
	Platform Platform `json:"platform" yaml:"platform"`
	URL      string   `json:"url" yaml:"url"`
	Label    string   `json:"label" yaml:"label"`
}

// Hero is the top profile block of a portfolio page
type Hero struct {
	Name         string       `json:"name" yaml:"name"`
	Title        string       `json:"title" yaml:"title"`
	Subtitle     []string     `json:"subtitle" yaml:"subtitle"`
	Bio          string       `json:"bio" yaml:"bio"`
	Email        string       `json:"email" yaml:"email"`
	ProfileImage string       `json:"profileImage" yaml:"profileImage"`
	ResumeURL    string       `json:"resumeUrl,omitempty" yaml:"resumeUrl,omitempty"`
	SocialLinks  []SocialLink `json:"socialLinks" yaml:"socialLinks"`
}

type Experience struct {
	Company    string `json:"company" yaml:"company"`
	Role       string `json:"role" yaml:"role"`
	Location   string `json:"location" yaml:"location"`
	Period     string `json:"period" yaml:"period"`
	Logo       string `json:"logo,omitempty" yaml:"logo,omitempty"`
	CompanyURL string `json:"companyUrl,omitempty" yaml:"companyUrl,omitempty"`
}

type Project struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Image        string   `json:"image" yaml:"image"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	GitHub       string   `json:"github,omitempty" yaml:"github,omitempty"`
	Demo         string   `json:"demo,omitempty" yaml:"demo,omitempty"`
	Active       bool     `json:"active" yaml:"active"`
	// Path marks a project shown in a separate display mode; the public grid skips it
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// PortfolioData is the full document behind a public page. Saves replace it whole.
type PortfolioData struct {
	Slug        string       `json:"slug" yaml:"slug"`
	Hero        Hero         `json:"hero" yaml:"hero"`
	Experiences []Experience `json:"experiences" yaml:"experiences"`
	Projects    []Project    `json:"projects" yaml:"projects"`
}

// GridProjects returns the projects shown in the public grid
func (d *PortfolioData) GridProjects() []Project {
	out := make([]Project, 0, len(d.Projects))
	for _, p := range d.Projects {
		if p.Path == "" {
			out = append(out, p)
		}
	}
	return out
}

// PortfolioRecord is one persisted portfolio, owned by exactly one identity
type PortfolioRecord struct {
	Slug      string        `json:"slug"`
	UserID    string        `json:"user_id"`
	Data      PortfolioData `json:"data"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CallerIdentity is the authenticated subject resolved at the HTTP boundary
type CallerIdentity struct {
	UserID string
	Email  string
}

func (c CallerIdentity) IsAnonymous() bool {
	return c.UserID == ""
}

// SavePortfolioRequest is the body of create and update calls
type SavePortfolioRequest struct {
	Slug string          `json:"slug" validate:"valid_slug"`
	Data json.RawMessage `json:"data" swaggertype:"object"`
}

// PortfolioRepository persists portfolio records. Slug and user id are both unique.
type PortfolioRepository interface {
	GetByUserID(ctx context.Context, userID string) (*PortfolioRecord, error)
	GetBySlug(ctx context.Context, slug string) (*PortfolioRecord, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// SlugsTaken reports which of the given slugs are already in use
	SlugsTaken(ctx context.Context, slugs []string) (map[string]bool, error)
	// Create returns ErrAlreadyOwned or ErrSlugTaken on a uniqueness violation
	Create(ctx context.Context, record *PortfolioRecord) error
	// Update overwrites slug, data and updated_at of the record owned by record.UserID
	Update(ctx context.Context, record *PortfolioRecord) error
	DeleteByUserID(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
}

type PortfolioUsecase interface {
	GetOwn(ctx context.Context, caller CallerIdentity) (*PortfolioRecord, error)
	Create(ctx context.Context, caller CallerIdentity, req *SavePortfolioRequest) error
	Update(ctx context.Context, caller CallerIdentity, req *SavePortfolioRequest) error
	Delete(ctx context.Context, caller CallerIdentity) error
	// Public operations
	GetPublic(ctx context.Context, slug string) (*PortfolioRecord, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	SuggestSlugs(ctx context.Context, slug string) ([]string, error)
}
