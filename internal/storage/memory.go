package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store used by tests and local development.
// Documents go through a bson round-trip on insert so field names and value
// types match what the Mongo-backed store produces.
type MemoryStore struct {
	mu          sync.Mutex
	name        string
	collections map[string][]bson.M
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:        name,
		collections: make(map[string][]bson.M),
	}
}

// InsertOne stores a copy of the document and returns a freshly assigned id.
func (s *MemoryStore) InsertOne(ctx context.Context, collection string, doc interface{}) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	var stored bson.M
	if err := bson.Unmarshal(raw, &stored); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	id := primitive.NewObjectID()
	stored["_id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], stored)
	return id.Hex(), nil
}

// Find returns up to limit documents in transport-safe shape, in insertion
// order unless a sort is requested.
func (s *MemoryStore) Find(ctx context.Context, collection string, limit int64, sortBy *Sort) ([]map[string]interface{}, error) {
	s.mu.Lock()
	docs := make([]bson.M, len(s.collections[collection]))
	copy(docs, s.collections[collection])
	s.mu.Unlock()

	if sortBy != nil {
		sort.SliceStable(docs, func(i, j int) bool {
			cmp := compareValues(docs[i][sortBy.Field], docs[j][sortBy.Field])
			if sortBy.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	// limit 0 means no limit, matching the Mongo driver.
	if limit > 0 && int64(len(docs)) > limit {
		docs = docs[:limit]
	}

	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Serialize(doc))
	}
	return out, nil
}

// Count returns the number of documents in a collection.
func (s *MemoryStore) Count(ctx context.Context, collection string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.collections[collection])), nil
}

// Collections lists the non-empty collection names.
func (s *MemoryStore) Collections(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Name returns the store name given at construction.
func (s *MemoryStore) Name() string {
	return s.name
}

// compareValues orders the value types a bson round-trip produces. Values of
// mismatched or unordered types compare as equal.
func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case primitive.DateTime:
		if bv, ok := b.(primitive.DateTime); ok {
			return compareTimes(av.Time(), bv.Time())
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return compareTimes(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
