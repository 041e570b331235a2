package domain

import (
	"context"
	"encoding/json"
)

// ParsedResumeData is the prefill draft extracted from a résumé. Every field is optional.
type ParsedResumeData struct {
	Name        string             `json:"name,omitempty"`
	Title       string             `json:"title,omitempty"`
	Email       string             `json:"email,omitempty"`
	Subtitle    []string           `json:"subtitle,omitempty"`
	Bio         string             `json:"bio,omitempty"`
	SocialLinks []ParsedSocialLink `json:"socialLinks,omitempty"`
	Experiences []ParsedExperience `json:"experiences,omitempty"`
	Projects    []ParsedProject    `json:"projects,omitempty"`
	Skills      []string           `json:"skills,omitempty"`
}

type ParsedSocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type ParsedExperience struct {
	Company  string `json:"company"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Period   string `json:"period"`
}

type ParsedProject struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHub       string   `json:"github"`
	Demo         string   `json:"demo"`
}

// ResumeFile is an uploaded résumé document
type ResumeFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ResumeExtractor sends one document to a hosted model and returns its raw text answer
type ResumeExtractor interface {
	Extract(ctx context.Context, prompt, filename, mimeType string, data []byte) (string, error)
	Configured() bool
}

type ResumeUsecase interface {
	// Parse returns the model's JSON answer verbatim
	Parse(ctx context.Context, file *ResumeFile) (json.RawMessage, error)
}
