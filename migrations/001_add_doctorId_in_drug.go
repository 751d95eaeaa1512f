package migrations

import (
	"context"
	"log"

	"CareLink360/db"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Drugs created before owner scoping carried no doctorId.
func AddDoctorIdFieldInDrug() {
	ctx := context.Background()
	result, err := db.DB.Collection(util.DrugCollection).UpdateMany(
		ctx,
		bson.M{"doctorId": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"doctorId": primitive.NilObjectID}},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Printf("Migration applied: %d documents updated\n", result.ModifiedCount)
}
