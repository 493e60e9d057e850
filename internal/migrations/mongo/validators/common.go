package validators

import "go.mongodb.org/mongo-driver/bson"

var (
	tenantID = bson.M{
		"bsonType":  "string",
		"minLength": 1,
		"maxLength": 64,
	}

	// References are stored as hex strings, not ObjectIDs.
	hexID = bson.M{
		"bsonType":  "string",
		"minLength": 24,
		"maxLength": 24,
	}

	money = bson.M{
		"bsonType": []string{"double", "int", "long", "decimal"},
		"minimum":  0,
	}
)

func boundedText(maxLength int) bson.M {
	return bson.M{
		"bsonType":  "string",
		"maxLength": maxLength,
	}
}
