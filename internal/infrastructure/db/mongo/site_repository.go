package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

const collectionSites = "sites"

// SiteRepository persists website submissions. Site ids are hex strings
// assigned at insert time.
type SiteRepository struct {
	col *mongo.Collection
}

func NewSiteRepository(db *mongo.Database) *SiteRepository {
	return &SiteRepository{col: db.Collection(collectionSites)}
}

func (r *SiteRepository) Create(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *site
	created.ID = primitive.NewObjectID().Hex()

	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert site: %w", err)
	}
	return &created, nil
}

func (r *SiteRepository) FindByID(ctx context.Context, id string) (*domain.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Site
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, fmt.Errorf("find site: %w", err)
	}
	return &s, nil
}

// List returns sites ordered by creation time, newest first.
func (r *SiteRepository) List(ctx context.Context, filter ports.SiteFilter) ([]*domain.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer cur.Close(ctx)

	sites := make([]*domain.Site, 0)
	for cur.Next(ctx) {
		var s domain.Site
		if err := cur.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode site: %w", err)
		}
		sites = append(sites, &s)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate sites: %w", err)
	}
	return sites, nil
}

func (r *SiteRepository) UpdateStatus(ctx context.Context, id string, status domain.SiteStatus, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":       status,
		"review_notes": notes,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update site status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

func (r *SiteRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"verified":   verified,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

// DeleteByOwner removes every submission owned by a user. Deleting nothing
// is not an error: the owner may simply have no sites.
func (r *SiteRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("delete sites by owner: %w", err)
	}
	return nil
}

func (r *SiteRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode count: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, cur.Err()
}

// EnsureIndexes creates the indexes backing owner and status listings.
func (r *SiteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
