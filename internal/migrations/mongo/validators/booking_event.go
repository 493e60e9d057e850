package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingEventValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "event_type", "tenant_id", "booking_id", "occurred_at", "recorded_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{"bsonType": "string", "minLength": 1},
			"event_type": bson.M{
				"bsonType": "string",
				"pattern":  `^booking\.`,
			},
			"tenant_id":   tenantID,
			"booking_id":  hexID,
			"start_time":  bson.M{"bsonType": "date"},
			"end_time":    bson.M{"bsonType": "date"},
			"occurred_at": bson.M{"bsonType": "date"},
			"recorded_at": bson.M{"bsonType": "date"},
		},
	},
}
