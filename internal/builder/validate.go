package builder

import (
	"fmt"
	"strconv"
	"strings"

	"link1t-backend/internal/domain"
	"link1t-backend/pkg/validation"
)

// ValidationError lists every rule a draft violates
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "draft is invalid: " + strings.Join(e.Problems, "; ")
}

// Validate returns the violated rules in form order, or nil
func Validate(d *domain.PortfolioData) []string {
	if d == nil {
		return []string{"Name is required", "Email is required"}
	}

	var errs []string

	if strings.TrimSpace(d.Hero.Name) == "" {
		errs = append(errs, "Name is required")
	}

	if strings.TrimSpace(d.Hero.Email) == "" {
		errs = append(errs, "Email is required")
	} else if !validation.IsValidEmail(d.Hero.Email) {
		errs = append(errs, "Please enter a valid email address")
	}

	for i, exp := range d.Experiences {
		if strings.TrimSpace(exp.Company) == "" || strings.TrimSpace(exp.Role) == "" {
			errs = append(errs, fmt.Sprintf("Experience %d: Company and Role are required", i+1))
		}
	}

	for i, p := range d.Projects {
		var missing []string
		if strings.TrimSpace(p.Title) == "" {
			missing = append(missing, "Title")
		}
		if strings.TrimSpace(p.Description) == "" {
			missing = append(missing, "Description")
		}
		if strings.TrimSpace(p.Image) == "" {
			missing = append(missing, "Image")
		}
		if len(missing) > 0 {
			name := p.Title
			if name == "" {
				name = strconv.Itoa(i + 1)
			}
			errs = append(errs, fmt.Sprintf("Project \"%s\": %s required", name, strings.Join(missing, ", ")))
		}
	}

	return errs
}
