package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkessel/trendmap/pkg/board"
)

// MongoStore is a MongoDB-backed curation store for hosted deployments.
// Each record type lives in its own collection.
type MongoStore struct {
	client     *mongo.Client
	trends     *mongo.Collection
	categories *mongo.Collection
	branding   *mongo.Collection
}

// MongoConfig holds connection settings for a MongoDB store.
type MongoConfig struct {
	URI      string // e.g. "mongodb://localhost:27017"
	Database string // defaults to "trendmap"
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "trendmap"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	return &MongoStore{
		client:     client,
		trends:     db.Collection("trends"),
		categories: db.Collection("categories"),
		branding:   db.Collection("branding"),
	}, nil
}

func (s *MongoStore) ListTrends(ctx context.Context) ([]board.Trend, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.trends.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}
	defer cur.Close(ctx)

	var trends []board.Trend
	if err := cur.All(ctx, &trends); err != nil {
		return nil, fmt.Errorf("decode trends: %w", err)
	}
	return trends, nil
}

func (s *MongoStore) GetTrend(ctx context.Context, id string) (*board.Trend, error) {
	var t board.Trend
	err := s.trends.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("trend %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trend %s: %w", id, err)
	}
	return &t, nil
}

func (s *MongoStore) SaveTrend(ctx context.Context, trend *board.Trend) error {
	prepareTrend(trend)

	filter := bson.D{{Key: "id", Value: trend.ID}}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.trends.ReplaceOne(ctx, filter, trend, opts); err != nil {
		return fmt.Errorf("save trend %s: %w", trend.ID, err)
	}
	return nil
}

func (s *MongoStore) DeleteTrend(ctx context.Context, id string) error {
	res, err := s.trends.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete trend %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("trend %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) ReplaceTrends(ctx context.Context, trends []board.Trend) error {
	if _, err := s.trends.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear trends: %w", err)
	}
	if len(trends) == 0 {
		return nil
	}

	docs := make([]any, len(trends))
	for i := range trends {
		t := trends[i]
		prepareTrend(&t)
		docs[i] = t
	}
	if _, err := s.trends.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert trends: %w", err)
	}
	return nil
}

func (s *MongoStore) ListCategories(ctx context.Context) ([]Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := s.categories.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	var categories []Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (s *MongoStore) SaveCategories(ctx context.Context, categories []Category) error {
	if _, err := s.categories.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	if len(categories) == 0 {
		return nil
	}

	docs := make([]any, len(categories))
	for i, c := range categories {
		docs[i] = c
	}
	if _, err := s.categories.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}

func (s *MongoStore) GetBranding(ctx context.Context) (*Branding, error) {
	var b Branding
	err := s.branding.FindOne(ctx, bson.D{}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get branding: %w", err)
	}
	return &b, nil
}

func (s *MongoStore) SaveBranding(ctx context.Context, branding *Branding) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.branding.ReplaceOne(ctx, bson.D{}, branding, opts); err != nil {
		return fmt.Errorf("save branding: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
