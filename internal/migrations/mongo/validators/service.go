package validators

import "go.mongodb.org/mongo-driver/bson"

var ServiceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"tenant_id", "name", "price", "duration_minutes", "is_active", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":       bson.M{"bsonType": "objectId"},
			"tenant_id": tenantID,
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"description": boundedText(1000),
			"price":       money,
			"duration_minutes": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  1440,
			},
			"category":   boundedText(50),
			"is_active":  bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
