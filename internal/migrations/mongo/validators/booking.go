package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"tenant_id",
			"client_id",
			"service_id",
			"staff_id",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"payment_status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"tenant_id": tenantID,

			"client_id":  hexID,
			"service_id": hexID,
			"staff_id":   hexID,

			"start_time": bson.M{"bsonType": "date"},
			"end_time":   bson.M{"bsonType": "date"},

			"duration_minutes": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  1440,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"scheduled",
					"confirmed",
					"in_progress",
					"completed",
					"cancelled",
					"no_show",
				},
			},

			"price":       money,
			"discount":    money,
			"final_price": money,

			"payment_status": bson.M{
				"bsonType": "string",
				"enum":     []string{"pending", "paid", "cancelled"},
			},
			"payment_method": bson.M{
				"bsonType": "string",
				"enum":     []string{"cash", "card", "pix"},
			},

			"notes":        boundedText(1000),
			"client_notes": boundedText(1000),

			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
