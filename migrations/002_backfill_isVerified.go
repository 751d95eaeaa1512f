package migrations

import (
	"context"
	"log"

	"CareLink360/db"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
)

func BackfillIsVerified() {
	ctx := context.Background()
	for _, collection := range []string{util.DoctorCollection, util.AssistantCollection, util.PatientCollection} {
		result, err := db.DB.Collection(collection).UpdateMany(
			ctx,
			bson.M{"isVerified": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"isVerified": false}},
		)
		if err != nil {
			log.Fatal("Migration failed:", err)
		}
		log.Printf("Migration applied in %s: %d documents updated\n", collection, result.ModifiedCount)
	}
}
