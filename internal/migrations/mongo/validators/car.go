package validators

import "go.mongodb.org/mongo-driver/bson"

var CarValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"model",
			"location",
			"rentalPrice",
			"date",
			"userDetails",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"model": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"location": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"rentalPrice": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"imageUrl": bson.M{
				"bsonType":  "string",
				"maxLength": 2048,
			},

			"availability": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"userDetails": bson.M{
				"bsonType": "object",
				"required": []string{"email"},
				"properties": bson.M{
					"name": bson.M{
						"bsonType":  "string",
						"maxLength": 100,
					},
					"email": bson.M{
						"bsonType":  "string",
						"minLength": 3,
						"maxLength": 254,
					},
				},
			},

			"booking_count": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},
		},
	},
}
