package services

import (
	"context"
	"errors"
	"log"

	"CareLink360/db"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Relationship listings. References are resolved one by one after loading the
// root account; a dangling reference is skipped, not an error.

func populateAccounts(ctx context.Context, collection string, ids []primitive.ObjectID) ([]bson.M, error) {
	coll := db.OpenCollections(collection)
	out := []bson.M{}
	for _, id := range ids {
		doc := bson.M{}
		err := db.FindOne(ctx, coll, bson.M{"_id": id}, &doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			log.Println("Error from findOne:", err)
			return nil, util.ErrStorage
		}
		out = append(out, sanitize(doc))
	}
	return out, nil
}

func ListDoctorPatients(ctx context.Context, doctorID primitive.ObjectID) ([]bson.M, error) {
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return populateAccounts(ctx, util.PatientCollection, doctor.Patients)
}

func ListDoctorAssistants(ctx context.Context, doctorID primitive.ObjectID) ([]bson.M, error) {
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return populateAccounts(ctx, util.AssistantCollection, doctor.Assistants)
}

func ListPatientDoctors(ctx context.Context, patientID primitive.ObjectID) ([]bson.M, error) {
	patient, err := GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return populateAccounts(ctx, util.DoctorCollection, patient.Doctors)
}

// GetPatientRecord returns the patient together with populated prescriptions
// and doctors, for the shared record view.
func GetPatientRecord(ctx context.Context, patientID primitive.ObjectID) (bson.M, error) {
	patientDoc := bson.M{}
	if err := findAccount(ctx, util.PatientCollection, bson.M{"_id": patientID}, &patientDoc); err != nil {
		return nil, err
	}

	prescriptions, err := ListPatientPrescriptions(ctx, patientID)
	if err != nil {
		return nil, err
	}
	doctors, err := ListPatientDoctors(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return bson.M{
		"patient":       sanitize(patientDoc),
		"prescriptions": prescriptions,
		"doctors":       doctors,
	}, nil
}
