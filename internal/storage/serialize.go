package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Serialize converts a stored document to transport-safe shape: object ids
// become hex strings and date/time values become ISO-8601 strings. Keys and
// all other values pass through unchanged.
func Serialize(doc map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = serializeValue(v)
	}
	return out
}

func serializeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
