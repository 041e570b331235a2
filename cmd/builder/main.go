// Command builder creates or updates the caller's portfolio against a running API.
//
//	builder -api http://localhost:8080 -token $TOKEN -username ada -draft ada.yaml
//	builder -api http://localhost:8080 -token $TOKEN -resume cv.pdf
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"link1t-backend/internal/builder"
	"link1t-backend/internal/domain"

	"gopkg.in/yaml.v3"
)

func main() {
	var (
		apiURL    = flag.String("api", envOr("LINK1T_API_URL", "http://localhost:8080"), "API base URL")
		token     = flag.String("token", os.Getenv("LINK1T_TOKEN"), "session token")
		baseURL   = flag.String("base-url", envOr("PUBLIC_BASE_URL", "http://localhost:3000"), "public site URL used in share links")
		username  = flag.String("username", "", "username used as the slug of a new portfolio")
		draftPath = flag.String("draft", "", "YAML or JSON file merged into the draft")
		resume    = flag.String("resume", "", "résumé file used to prefill a new portfolio")
		timeout   = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	url, err := run(ctx, builder.NewHTTPClient(*apiURL, *token), builder.Options{
		Username: *username,
		BaseURL:  *baseURL,
	}, *draftPath, *resume)
	if err != nil {
		var ve *builder.ValidationError
		if errors.As(err, &ve) {
			for _, p := range ve.Problems {
				fmt.Fprintln(os.Stderr, "  -", p)
			}
		}
		fmt.Fprintln(os.Stderr, "builder:", err)
		os.Exit(1)
	}
	fmt.Println(url)
}

func run(ctx context.Context, client builder.Client, opts builder.Options, draftPath, resumePath string) (string, error) {
	b := builder.New(client, opts)

	state, err := b.Load(ctx)
	if err != nil {
		return "", err
	}

	switch {
	case state == builder.StateExisting:
		if err := b.Edit(); err != nil {
			return "", err
		}
	case resumePath != "":
		file, err := readResume(resumePath)
		if err != nil {
			return "", err
		}
		if err := b.UploadResume(ctx, file); err != nil {
			return "", fmt.Errorf("parse resume: %w", err)
		}
	default:
		if err := b.FillManually(); err != nil {
			return "", err
		}
	}

	if draftPath != "" {
		raw, err := os.ReadFile(draftPath)
		if err != nil {
			return "", err
		}
		// YAML is a superset of JSON, so one decoder covers both formats
		var decodeErr error
		if err := b.Mutate(func(d *domain.PortfolioData) {
			slug := d.Slug
			decodeErr = yaml.Unmarshal(raw, d)
			if d.Slug == "" {
				d.Slug = slug
			}
		}); err != nil {
			return "", err
		}
		if decodeErr != nil {
			return "", fmt.Errorf("decode %s: %w", draftPath, decodeErr)
		}
	}

	return b.Submit(ctx)
}

func readResume(path string) (*domain.ResumeFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &domain.ResumeFile{Filename: filepath.Base(path), Content: content}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
