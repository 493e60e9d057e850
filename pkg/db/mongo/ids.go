package mongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID parses a hex id, ok is false when it is malformed.
func ObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// IsObjectID reports whether id is a 24 character hex ObjectID.
func IsObjectID(id string) bool {
	_, ok := ObjectID(id)
	return ok
}

func HexID(v any) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
