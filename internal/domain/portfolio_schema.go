package domain

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// portfolioSchema checks the shape of a PortfolioData document. Required-field
// rules stay with the builder so partially filled drafts can still be saved.
const portfolioSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "slug": {"type": "string"},
    "hero": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "title": {"type": "string"},
        "subtitle": {"type": ["array", "null"], "items": {"type": "string"}},
        "bio": {"type": "string"},
        "email": {"type": "string"},
        "profileImage": {"type": "string"},
        "resumeUrl": {"type": "string"},
        "socialLinks": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "properties": {
              "platform": {"enum": ["github", "linkedin", "twitter", "leetcode", "youtube", "email", "other"]},
              "url": {"type": "string"},
              "label": {"type": "string"}
            }
          }
        }
      }
    },
    "experiences": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "company": {"type": "string"},
          "role": {"type": "string"},
          "location": {"type": "string"},
          "period": {"type": "string"},
          "logo": {"type": "string"},
          "companyUrl": {"type": "string"}
        }
      }
    },
    "projects": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "description": {"type": "string"},
          "image": {"type": "string"},
          "technologies": {"type": ["array", "null"], "items": {"type": "string"}},
          "github": {"type": "string"},
          "demo": {"type": "string"},
          "active": {"type": "boolean"},
          "path": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func loadPortfolioSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(portfolioSchema))
	})
	return compiledSchema, schemaErr
}

// ValidatePortfolioDocument returns one message per structural violation in raw.
// A non-nil error means raw could not be checked at all (for example, invalid JSON).
func ValidatePortfolioDocument(raw []byte) ([]string, error) {
	schema, err := loadPortfolioSchema()
	if err != nil {
		return nil, fmt.Errorf("compile portfolio schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	if res.Valid() {
		return nil, nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return msgs, nil
}
