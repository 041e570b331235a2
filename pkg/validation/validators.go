package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Slugs end up as the first path segment of a public page
	slugRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	// Same rule the builder form applies, looser than RFC 5322 on purpose
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// reservedSlugs collide with routes mounted at the root
var reservedSlugs = map[string]struct{}{
	"v1":          {},
	"p":           {},
	"asset-proxy": {},
	"swagger":     {},
	"healthz":     {},
	"builder":     {},
	"favicon.ico": {},
	"robots.txt":  {},
}

// New returns a validator with the custom rules registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_slug", ValidSlug)
	_ = v.RegisterValidation("loose_email", LooseEmail)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// IsValidSlug reports whether s can be used as a public page slug
func IsValidSlug(s string) bool {
	if !slugRegex.MatchString(s) {
		return false
	}
	_, reserved := reservedSlugs[strings.ToLower(s)]
	return !reserved
}

// IsValidEmail applies the builder's email rule
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func ValidSlug(fl validator.FieldLevel) bool {
	return IsValidSlug(fl.Field().String())
}

// LooseEmail validates an email with the builder's rule. Empty passes, use required if needed.
func LooseEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsValidEmail(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Supplementary planes are mostly emoji/symbols
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
