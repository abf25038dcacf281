package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"user_id",
			"price",
			"time_slot",
			"date",
			"is_paid",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"username": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"wa": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"time_slot": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"is_paid": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
