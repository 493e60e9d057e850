package validators

import "go.mongodb.org/mongo-driver/bson"

var dayHours = bson.M{
	"bsonType": "object",
	"required": []string{"start", "end"},
	"properties": bson.M{
		"start": bson.M{"bsonType": "string", "pattern": `^([01]\d|2[0-3]):[0-5]\d$`},
		"end":   bson.M{"bsonType": "string", "pattern": `^([01]\d|2[0-3]):[0-5]\d$`},
	},
}

var StaffValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"tenant_id", "name", "is_active", "created_at"},
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
			"position": boundedText(100),
			"specialties": bson.M{
				"bsonType": "array",
				"maxItems": 20,
				"items":    boundedText(50),
			},
			"experience_years": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  80,
			},
			"is_active": bson.M{"bsonType": "bool"},
			"work_schedule": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"monday":    dayHours,
					"tuesday":   dayHours,
					"wednesday": dayHours,
					"thursday":  dayHours,
					"friday":    dayHours,
					"saturday":  dayHours,
					"sunday":    dayHours,
				},
			},
			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
