package mongo

import (
	"errors"
	"testing"
	"time"

	"link1t-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDocRoundTripKeepsJSONFieldNames(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &domain.PortfolioRecord{
		Slug:   "ada",
		UserID: "user_1",
		Data: domain.PortfolioData{
			Slug: "ada",
			Hero: domain.Hero{
				Name:         "Ada Lovelace",
				Email:        "ada@example.com",
				ProfileImage: "/asset-proxy/ada/1-me.png",
				Subtitle:     []string{"Mathematician"},
			},
			Projects: []domain.Project{{Title: "Difference Engine", Active: true, Technologies: []string{"brass"}}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc, err := toDoc(rec)
	require.NoError(t, err)
	raw, err := bson.MarshalExtJSON(doc.Data, false, false)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"profileImage":"/asset-proxy/ada/1-me.png"`)

	back, err := fromDoc(doc)
	require.NoError(t, err)
	assert.Equal(t, rec.Data, back.Data)
	assert.Equal(t, rec.Slug, back.Slug)
}

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil))

	plain := errors.New("boom")
	assert.Equal(t, plain, mapWriteError(plain))

	dupUser := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: link1t.portfolios index: uniq_user_id dup key: { user_id: \"u1\" }",
	}}}
	assert.ErrorIs(t, mapWriteError(dupUser), domain.ErrAlreadyOwned)

	dupSlug := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: link1t.portfolios index: uniq_slug dup key: { slug: \"ada\" }",
	}}}
	assert.ErrorIs(t, mapWriteError(dupSlug), domain.ErrSlugTaken)
}
