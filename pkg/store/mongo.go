package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default Mongo locations for drawings.
const (
	defaultMongoDatabase   = "kaleido"
	defaultMongoCollection = "drawings"
)

// MongoStore is a MongoDB-backed drawing store for the hosted gallery.
// Drawings are stored as BSON documents keyed by their id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "kaleido"
	Collection string // defaults to "drawings"
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
// A failed ping is returned as a construction error; no partially-connected
// store is ever returned.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = defaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo %s: %w", cfg.URI, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Drawing, error) {
	var d Drawing
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get: %w", err)
	}
	return &d, nil
}

func (s *MongoStore) Put(ctx context.Context, d *Drawing) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"id": d.ID}, d, opts); err != nil {
		return fmt.Errorf("mongo put: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	// Project the strokes down to a count server-side; full stroke payloads
	// can be large and the listing never needs them.
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"id":         1,
			"name":       1,
			"created_at": 1,
			"updated_at": 1,
			"strokes":    bson.M{"$size": bson.M{"$ifNull": bson.A{"$strokes", bson.A{}}}},
		}}},
		{{Key: "$sort", Value: bson.M{"updated_at": -1}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cur.Close(ctx)

	var infos []Info
	if err := cur.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("mongo list decode: %w", err)
	}
	return infos, nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
