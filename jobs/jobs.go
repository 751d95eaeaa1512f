package jobs

import (
	"context"
	"log"
	"time"

	"CareLink360/db"
	"CareLink360/models"
	"CareLink360/util"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// Accounts that never verify are purged after this long.
const unverifiedTTL = 7 * 24 * time.Hour

func StartDailyScheduler() {
	c := cron.New()

	// Runs every day at 00:30 AM
	c.AddFunc("30 0 * * *", func() {
		log.Println("Running daily cleanup...")
		PurgeUnverifiedAccounts()
		PurgeOrphanedPendingPrescriptions()
	})

	c.Start()
}

func PurgeUnverifiedAccounts() {
	cutoff := time.Now().Add(-unverifiedTTL)
	filter := bson.M{
		"isVerified": false,
		"createdAt":  bson.M{"$lt": cutoff},
	}

	for _, collection := range []string{util.DoctorCollection, util.AssistantCollection, util.PatientCollection} {
		coll := db.OpenCollections(collection)
		deleted, err := db.DeleteMany(context.Background(), coll, filter)
		if err != nil {
			log.Println("Error purging unverified accounts in", collection, ":", err)
			continue
		}
		if deleted.DeletedCount > 0 {
			log.Println("Purged", deleted.DeletedCount, "unverified accounts from", collection)
		}
	}
}

// Pending prescriptions whose patient or doctor account is gone are dropped.
func PurgeOrphanedPendingPrescriptions() {
	ctx := context.Background()
	coll := db.OpenCollections(util.PendingPrescriptionCollection)

	pendings := []models.PendingPrescription{}
	if err := db.FindAll(ctx, coll, nil, &pendings); err != nil {
		log.Println("Error from the findAll function:", err)
		return
	}

	doctorColl := db.OpenCollections(util.DoctorCollection)
	patientColl := db.OpenCollections(util.PatientCollection)

	for _, pending := range pendings {
		doctorCount, err := db.Count(ctx, doctorColl, bson.M{"_id": pending.DoctorID})
		if err != nil {
			log.Println("Error checking doctor for pending prescription:", err)
			continue
		}
		patientCount, err := db.Count(ctx, patientColl, bson.M{"_id": pending.PatientID})
		if err != nil {
			log.Println("Error checking patient for pending prescription:", err)
			continue
		}
		if doctorCount > 0 && patientCount > 0 {
			continue
		}

		if _, err := db.DeleteOne(ctx, coll, bson.M{"_id": pending.ID}); err != nil {
			log.Println("Error deleting orphaned pending prescription:", err)
			continue
		}
		log.Println("Purged orphaned pending prescription", pending.ID.Hex())
	}
}
