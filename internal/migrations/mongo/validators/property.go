package validators

import "go.mongodb.org/mongo-driver/bson"

var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"host_id",
			"title",
			"location",
			"pricing",
			"booking_settings",
			"first_five_approved",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"host_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 150,
			},

			"location": bson.M{
				"bsonType": "object",
				"required": []string{"address", "city", "country"},
				"properties": bson.M{
					"address": bson.M{"bsonType": "string"},
					"city":    bson.M{"bsonType": "string"},
					"country": bson.M{"bsonType": "string"},
				},
			},

			"pricing": bson.M{
				"bsonType": "object",
				"required": []string{"pricing_type"},
				"properties": bson.M{
					"pricing_type": bson.M{
						"bsonType": "string",
						"enum":     []string{"NIGHTLY", "HOURLY"},
					},
					"weekday_price": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
					"hourly_price": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
					"min_hours": bson.M{
						"bsonType": []string{"int", "long"},
						"minimum":  0,
					},
					"discounts": bson.M{
						"bsonType": "object",
						"properties": bson.M{
							"new_listing": bson.M{"bsonType": "bool"},
							"last_minute": bson.M{"bsonType": "bool"},
							"weekly":      bson.M{"bsonType": "bool"},
							"monthly":     bson.M{"bsonType": "bool"},
						},
					},
				},
			},

			"extras": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"name", "price"},
					"properties": bson.M{
						"name": bson.M{
							"bsonType":  "string",
							"minLength": 1,
							"maxLength": 100,
						},
						"price": bson.M{
							"bsonType": []string{"double", "int", "long", "decimal"},
							"minimum":  0,
						},
					},
				},
			},

			"booking_settings": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"instant_book":       bson.M{"bsonType": "bool"},
					"approve_first_five": bson.M{"bsonType": "bool"},
				},
			},

			"first_five_approved": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  5,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
