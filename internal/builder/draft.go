package builder

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"link1t-backend/internal/domain"
)

var defaultSubtitle = []string{"Full Stack Developer"}

func defaultSocialLinks() []domain.SocialLink {
	return []domain.SocialLink{
		{Platform: domain.PlatformGitHub, URL: "", Label: "GitHub"},
		{Platform: domain.PlatformLinkedIn, URL: "", Label: "LinkedIn"},
	}
}

var knownPlatforms = map[domain.Platform]bool{
	domain.PlatformGitHub:   true,
	domain.PlatformLinkedIn: true,
	domain.PlatformTwitter:  true,
	domain.PlatformLeetCode: true,
	domain.PlatformYouTube:  true,
	domain.PlatformEmail:    true,
	domain.PlatformOther:    true,
}

// DeriveUsername picks the identity provider username, else the lowercased
// first name with whitespace removed.
func DeriveUsername(username, firstName string) string {
	if username != "" {
		return username
	}
	return strings.Join(strings.Fields(strings.ToLower(firstName)), "")
}

// BlankDraft is the starting point of a manually filled portfolio
func BlankDraft(username string) *domain.PortfolioData {
	return &domain.PortfolioData{
		Slug: username,
		Hero: domain.Hero{
			Subtitle:    append([]string(nil), defaultSubtitle...),
			SocialLinks: defaultSocialLinks(),
		},
		Experiences: []domain.Experience{},
		Projects:    []domain.Project{},
	}
}

// PrefillDraft maps parsed résumé data into a full draft. Parsed experiences
// carry no logos and parsed projects have no image and start active.
func PrefillDraft(username string, parsed *domain.ParsedResumeData) *domain.PortfolioData {
	if parsed == nil {
		return BlankDraft(username)
	}

	d := BlankDraft(username)
	d.Hero.Name = parsed.Name
	d.Hero.Title = parsed.Title
	d.Hero.Email = parsed.Email
	d.Hero.Bio = parsed.Bio
	if len(parsed.Subtitle) > 0 {
		d.Hero.Subtitle = append([]string(nil), parsed.Subtitle...)
	}

	if len(parsed.SocialLinks) > 0 {
		links := make([]domain.SocialLink, 0, len(parsed.SocialLinks))
		for _, l := range parsed.SocialLinks {
			platform := domain.Platform(strings.ToLower(strings.TrimSpace(l.Platform)))
			if !knownPlatforms[platform] {
				platform = domain.PlatformOther
			}
			links = append(links, domain.SocialLink{
				Platform: platform,
				URL:      l.URL,
				Label:    capitalize(l.Platform),
			})
		}
		d.Hero.SocialLinks = links
	}

	for _, e := range parsed.Experiences {
		d.Experiences = append(d.Experiences, domain.Experience{
			Company:  e.Company,
			Role:     e.Role,
			Location: e.Location,
			Period:   e.Period,
		})
	}

	for _, p := range parsed.Projects {
		d.Projects = append(d.Projects, domain.Project{
			Title:        p.Title,
			Description:  p.Description,
			Technologies: append([]string{}, p.Technologies...),
			GitHub:       p.GitHub,
			Demo:         p.Demo,
			Active:       true,
		})
	}

	return d
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// cloneDraft deep-copies d so a submit in flight never sees later edits
func cloneDraft(d *domain.PortfolioData) (*domain.PortfolioData, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out domain.PortfolioData
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
