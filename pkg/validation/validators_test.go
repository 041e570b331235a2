package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSlug(t *testing.T) {
	cases := map[string]bool{
		"ada":            true,
		"ada-lovelace":   true,
		"Ada_Lovelace99": true,
		"":               false,
		"ada lovelace":   false,
		"ada/lovelace":   false,
		"v1":             false,
		"Asset-Proxy":    false,
		"p":              false,
	}
	for slug, want := range cases {
		assert.Equal(t, want, IsValidSlug(slug), "slug %q", slug)
	}

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, IsValidSlug(string(long)))
	assert.True(t, IsValidSlug(string(long[:64])))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ada@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("ada@example"))
	assert.False(t, IsValidEmail("ada @example.com"))
}

func TestFormatValidationErrors(t *testing.T) {
	type form struct {
		Slug  string `validate:"required,valid_slug"`
		Email string `validate:"loose_email"`
		Name  string `validate:"required"`
	}

	v := New()
	err := v.Struct(form{Slug: "v1", Email: "nope"})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Len(t, msgs, 3)
	assert.Contains(t, msgs, "Please enter a valid email address")
	assert.Contains(t, msgs, "Name is required")
	assert.Contains(t, msgs[0], "Username")
}

func TestNoEmoji(t *testing.T) {
	type form struct {
		Name string `validate:"no_emoji"`
	}
	v := New()

	assert.NoError(t, v.Struct(form{Name: "Ada Lovelace"}))
	assert.NoError(t, v.Struct(form{Name: "Zoë Ørsted-Núñez"}))
	assert.Error(t, v.Struct(form{Name: "Ada 🚀"}))
	assert.Error(t, v.Struct(form{Name: "Ada ☕"}))

	err := v.Struct(form{Name: "🎉"})
	require.Error(t, err)
	assert.Equal(t, []string{"Name must not contain emoji or special symbols"}, FormatValidationErrors(err))
}
