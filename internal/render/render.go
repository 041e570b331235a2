// Package render turns a stored portfolio into its public HTML page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"link1t-backend/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer is safe for concurrent use
type Renderer struct {
	page     *template.Template
	notFound *template.Template
	now      func() time.Time
}

type pageView struct {
	Title       string
	Description string
	Hero        domain.Hero
	Socials     []domain.SocialLink
	Experiences []domain.Experience
	Projects    []domain.Project
	Year        int
}

func New() (*Renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/portfolio.html")
	if err != nil {
		return nil, fmt.Errorf("parse portfolio template: %w", err)
	}
	notFound, err := template.ParseFS(templateFS, "templates/not_found.html")
	if err != nil {
		return nil, fmt.Errorf("parse not found template: %w", err)
	}
	return &Renderer{page: page, notFound: notFound, now: time.Now}, nil
}

// MustNew is New for program start-up; the templates are embedded so failure is a build defect
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// WithClock sets the time source for the footer year
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Portfolio writes the public page for data. Output is fully buffered so a
// template error never leaves a half-written response.
func (r *Renderer) Portfolio(w io.Writer, data *domain.PortfolioData) error {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, newPageView(data, r.now().Year())); err != nil {
		return fmt.Errorf("render portfolio %q: %w", data.Slug, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) NotFound(w io.Writer) error {
	return r.notFound.Execute(w, nil)
}

func newPageView(d *domain.PortfolioData, year int) pageView {
	name := d.Hero.Name
	desc := strings.TrimSpace(d.Hero.Bio)
	if desc == "" {
		desc = name + "'s professional portfolio"
	}

	socials := make([]domain.SocialLink, 0, len(d.Hero.SocialLinks))
	for _, l := range d.Hero.SocialLinks {
		if strings.TrimSpace(l.URL) == "" {
			continue
		}
		if l.Label == "" {
			l.Label = string(l.Platform)
		}
		if l.Platform == domain.PlatformEmail && !strings.Contains(l.URL, ":") {
			l.URL = "mailto:" + l.URL
		}
		socials = append(socials, l)
	}

	return pageView{
		Title:       name + " - Portfolio",
		Description: desc,
		Hero:        d.Hero,
		Socials:     socials,
		Experiences: d.Experiences,
		Projects:    d.GridProjects(),
		Year:        year,
	}
}
