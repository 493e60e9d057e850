package validators

import "go.mongodb.org/mongo-driver/bson"

var ClientValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"tenant_id", "name", "phone", "is_active", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":       bson.M{"bsonType": "objectId"},
			"tenant_id": tenantID,
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"email": bson.M{"bsonType": "string"},
			"phone": bson.M{
				"bsonType": "string",
				"pattern":  `^\+[1-9]\d{1,14}$`,
			},
			"birth_date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},
			"notes":     boundedText(1000),
			"is_active": bson.M{"bsonType": "bool"},
			"total_appointments": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},
			"total_spent": money,
			"last_visit":  bson.M{"bsonType": "date"},
			"created_at":  bson.M{"bsonType": "date"},
			"updated_at":  bson.M{"bsonType": "date"},
		},
	},
}
