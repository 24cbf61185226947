package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore initializes a new MongoStore for the given database name.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(dbName)}
}

// Connect establishes and verifies a connection to MongoDB.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// InsertOne persists a single document and returns the assigned id as a hex string.
func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc interface{}) (string, error) {
	result, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", result.InsertedID), nil
	}
	return oid.Hex(), nil
}

// Find returns up to limit documents from a collection in transport-safe shape.
func (s *MongoStore) Find(ctx context.Context, collection string, limit int64, sort *Sort) ([]map[string]interface{}, error) {
	opts := options.Find().SetLimit(limit)
	if sort != nil {
		dir := 1
		if sort.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}})
	}

	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents from %s: %w", collection, err)
	}

	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Serialize(doc))
	}
	return out, nil
}

// Count returns the number of documents in a collection.
func (s *MongoStore) Count(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents in %s: %w", collection, err)
	}
	return n, nil
}

// Collections lists the collection names present in the database.
func (s *MongoStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// Ping verifies connectivity to MongoDB.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Name returns the database name.
func (s *MongoStore) Name() string {
	return s.db.Name()
}
