package storage

import "context"

// Collection names, one flat collection per entity type.
const (
	AccountCollection     = "account"
	CategoryCollection    = "category"
	TransactionCollection = "transaction"
	BudgetCollection      = "budget"
)

// Sort requests a single-field ordering for Find. A nil *Sort means
// insertion order.
type Sort struct {
	Field string
	Desc  bool
}

// Store is the document-store facade. Implementations are collection-agnostic:
// they persist whatever document they are given and return it in transport-safe
// shape, with no validation of their own.
type Store interface {
	// InsertOne persists a single document and returns its assigned id.
	InsertOne(ctx context.Context, collection string, doc interface{}) (string, error)
	// Find returns up to limit documents in transport-safe shape.
	Find(ctx context.Context, collection string, limit int64, sort *Sort) ([]map[string]interface{}, error)
	// Count returns the number of documents in a collection.
	Count(ctx context.Context, collection string) (int64, error)
	// Collections lists the collection names present in the database.
	Collections(ctx context.Context) ([]string, error)
	// Ping verifies connectivity to the underlying database.
	Ping(ctx context.Context) error
	// Name returns the database name.
	Name() string
}
