package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhigl/jobscout/internal/model"
)

const (
	mongoDatabase           = "jobs"
	mongoPostingsCollection = "saved-jobs"
	mongoInsightsCollection = "saved-insights"
)

// MongoStore persists postings and insights in MongoDB. Documents are keyed
// by the posting/insight id string, so retrieval and delete need no ObjectID
// round-trips.
type MongoStore struct {
	client   *mongo.Client
	postings *mongo.Collection
	insights *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	db := client.Database(mongoDatabase)
	return &MongoStore{
		client:   client,
		postings: db.Collection(mongoPostingsCollection),
		insights: db.Collection(mongoInsightsCollection),
	}, nil
}

// SavePosting inserts a posting, assigning a derived id when absent.
func (s *MongoStore) SavePosting(ctx context.Context, p model.JobPosting) (string, error) {
	if p.ID == "" {
		p.ID = model.DerivePostingID(p)
	}
	if _, err := s.postings.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("saving posting %s: %w", p.ID, err)
	}
	return p.ID, nil
}

// ListPostings returns every saved posting.
func (s *MongoStore) ListPostings(ctx context.Context) ([]model.JobPosting, error) {
	cur, err := s.postings.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing postings: %w", err)
	}
	var out []model.JobPosting
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding postings: %w", err)
	}
	return out, nil
}

// DeletePosting removes a posting by id.
func (s *MongoStore) DeletePosting(ctx context.Context, id string) error {
	res, err := s.postings.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("deleting posting %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SaveInsight inserts an insight, assigning a random id when absent.
func (s *MongoStore) SaveInsight(ctx context.Context, in model.JobInsights) (string, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if _, err := s.insights.InsertOne(ctx, in); err != nil {
		return "", fmt.Errorf("saving insight %s: %w", in.ID, err)
	}
	return in.ID, nil
}

// ListInsights returns every saved insight.
func (s *MongoStore) ListInsights(ctx context.Context) ([]model.JobInsights, error) {
	cur, err := s.insights.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing insights: %w", err)
	}
	var out []model.JobInsights
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding insights: %w", err)
	}
	return out, nil
}

// DeleteInsight removes an insight by id.
func (s *MongoStore) DeleteInsight(ctx context.Context, id string) error {
	res, err := s.insights.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("deleting insight %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
