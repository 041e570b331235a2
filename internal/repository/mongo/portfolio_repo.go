package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"link1t-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionPortfolios = "portfolios"
	indexSlug            = "uniq_slug"
	indexUserID          = "uniq_user_id"
)

// portfolioDoc is the stored shape; data keeps the JSON field names of PortfolioData
type portfolioDoc struct {
	Slug      string    `bson:"slug"`
	UserID    string    `bson:"user_id"`
	Data      bson.M    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type portfolioRepo struct {
	col *mongo.Collection
}

func NewPortfolioRepository(db *mongo.Database) domain.PortfolioRepository {
	return &portfolioRepo{col: db.Collection(collectionPortfolios)}
}

// EnsureIndexes creates the unique indexes that close the check-then-insert race
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(collectionPortfolios).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName(indexSlug).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName(indexUserID).SetUnique(true),
		},
	})
	return err
}

func (r *portfolioRepo) GetByUserID(ctx context.Context, userID string) (*domain.PortfolioRecord, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *portfolioRepo) GetBySlug(ctx context.Context, slug string) (*domain.PortfolioRecord, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *portfolioRepo) findOne(ctx context.Context, filter bson.M) (*domain.PortfolioRecord, error) {
	var doc portfolioDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDoc(&doc)
}

func (r *portfolioRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *portfolioRepo) SlugsTaken(ctx context.Context, slugs []string) (map[string]bool, error) {
	taken := make(map[string]bool, len(slugs))
	if len(slugs) == 0 {
		return taken, nil
	}

	cur, err := r.col.Find(ctx,
		bson.M{"slug": bson.M{"$in": slugs}},
		options.Find().SetProjection(bson.M{"slug": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			Slug string `bson:"slug"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		taken[doc.Slug] = true
	}
	return taken, cur.Err()
}

func (r *portfolioRepo) Create(ctx context.Context, rec *domain.PortfolioRecord) error {
	doc, err := toDoc(rec)
	if err != nil {
		return err
	}
	_, err = r.col.InsertOne(ctx, doc)
	return mapWriteError(err)
}

func (r *portfolioRepo) Update(ctx context.Context, rec *domain.PortfolioRecord) error {
	doc, err := toDoc(rec)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": rec.UserID},
		bson.M{"$set": bson.M{
			"slug":       doc.Slug,
			"data":       doc.Data,
			"updated_at": doc.UpdatedAt,
		}},
	)
	if err != nil {
		return mapWriteError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *portfolioRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

func (r *portfolioRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.col.Database().Client().Ping(ctx, nil)
}

func toDoc(rec *domain.PortfolioRecord) (*portfolioDoc, error) {
	raw, err := json.Marshal(rec.Data)
	if err != nil {
		return nil, err
	}
	var data bson.M
	if err := bson.UnmarshalExtJSON(raw, false, &data); err != nil {
		return nil, fmt.Errorf("convert portfolio data: %w", err)
	}
	return &portfolioDoc{
		Slug:      rec.Slug,
		UserID:    rec.UserID,
		Data:      data,
		CreatedAt: rec.CreatedAt.UTC(),
		UpdatedAt: rec.UpdatedAt.UTC(),
	}, nil
}

func fromDoc(doc *portfolioDoc) (*domain.PortfolioRecord, error) {
	rec := &domain.PortfolioRecord{
		Slug:      doc.Slug,
		UserID:    doc.UserID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.Data == nil {
		return rec, nil
	}
	raw, err := bson.MarshalExtJSON(doc.Data, false, false)
	if err != nil {
		return nil, fmt.Errorf("convert portfolio data: %w", err)
	}
	if err := json.Unmarshal(raw, &rec.Data); err != nil {
		return nil, fmt.Errorf("decode portfolio data for %q: %w", doc.Slug, err)
	}
	return rec, nil
}

// mapWriteError turns duplicate key errors into domain sentinels
func mapWriteError(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), indexUserID) {
		return domain.ErrAlreadyOwned
	}
	return domain.ErrSlugTaken
}
