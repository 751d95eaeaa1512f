package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"CareLink360/db"
	"CareLink360/models"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Pending prescriptions: staged by an assistant, approved or rejected by the
// doctor they were staged for.

func getPendingPrescription(ctx context.Context, id primitive.ObjectID) (*models.PendingPrescription, error) {
	pending := &models.PendingPrescription{}
	coll := db.OpenCollections(util.PendingPrescriptionCollection)
	err := db.FindOne(ctx, coll, bson.M{"_id": id}, pending)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: pending prescription not found", util.ErrNotFound)
	}
	if err != nil {
		log.Println("Error from findOne:", err)
		return nil, util.ErrStorage
	}
	return pending, nil
}

/*
* The assistant must be linked to the doctor it stages for
* Drug names resolve within the doctor's catalog; unknown names are dropped,
* duplicates collapse, and an empty result rejects the staging
 */
func CreatePendingPrescription(ctx context.Context, assistantID primitive.ObjectID, patientEmail, doctorEmail string, drugNames []string) (*models.PendingPrescription, error) {
	assistant, err := GetAssistantByID(ctx, assistantID)
	if err != nil {
		return nil, err
	}
	patient, err := GetPatientByEmail(ctx, patientEmail)
	if err != nil {
		return nil, err
	}
	doctor, err := GetDoctorByEmail(ctx, doctorEmail)
	if err != nil {
		return nil, err
	}

	if !containsID(assistant.Doctors, doctor.ID) {
		return nil, fmt.Errorf("%w: assistant does not work for this doctor", util.ErrForbidden)
	}

	drugColl := db.OpenCollections(util.DrugCollection)
	ids := []primitive.ObjectID{}
	for _, name := range drugNames {
		drug := &models.Drug{}
		err := db.FindOne(ctx, drugColl, drugNameFilter(doctor.ID, name), drug)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			log.Println("Error from findOne:", err)
			return nil, util.ErrStorage
		}
		ids = append(ids, drug.ID)
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no valid drugs for this doctor", util.ErrInvalidInput)
	}

	pending := &models.PendingPrescription{
		ID:        primitive.NewObjectID(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Drugs:     ids,
	}
	coll := db.OpenCollections(util.PendingPrescriptionCollection)
	if _, err := db.CreateOne(ctx, coll, pending); err != nil {
		log.Println("Error from createOne:", err)
		return nil, util.ErrStorage
	}
	return pending, nil
}

func ListPendingPrescriptions(ctx context.Context, doctorID primitive.ObjectID) ([]bson.M, error) {
	pendings := []models.PendingPrescription{}
	coll := db.OpenCollections(util.PendingPrescriptionCollection)
	if err := db.FindAll(ctx, coll, bson.M{"doctorId": doctorID}, &pendings); err != nil {
		log.Println("Error from findAll:", err)
		return nil, util.ErrStorage
	}

	out := []bson.M{}
	for i := range pendings {
		populated, err := populatePending(ctx, &pendings[i])
		if err != nil {
			return nil, err
		}
		out = append(out, populated)
	}
	return out, nil
}

func GetPendingPrescription(ctx context.Context, doctorID, pendingID primitive.ObjectID) (bson.M, error) {
	pending, err := getPendingPrescription(ctx, pendingID)
	if err != nil {
		return nil, err
	}
	if pending.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: pending prescription belongs to another doctor", util.ErrForbidden)
	}
	return populatePending(ctx, pending)
}

/*
* Promotion: a finalized prescription is created through the same path a
* doctor-written one takes, then the staged record is removed
 */
func ApprovePendingPrescription(ctx context.Context, doctorID, pendingID primitive.ObjectID) (*models.Prescription, error) {
	pending, err := getPendingPrescription(ctx, pendingID)
	if err != nil {
		return nil, err
	}
	if pending.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: pending prescription belongs to another doctor", util.ErrForbidden)
	}

	prescription, err := createPrescriptionFromIDs(ctx, pending.DoctorID, pending.PatientID, pending.Drugs)
	if err != nil {
		return nil, err
	}

	coll := db.OpenCollections(util.PendingPrescriptionCollection)
	if _, err := db.DeleteOne(ctx, coll, bson.M{"_id": pendingID}); err != nil {
		log.Println("Error from deleteOne:", err)
		return prescription, util.ErrStorage
	}
	return prescription, nil
}

func DeletePendingPrescription(ctx context.Context, doctorID, pendingID primitive.ObjectID) error {
	pending, err := getPendingPrescription(ctx, pendingID)
	if err != nil {
		return err
	}
	if pending.DoctorID != doctorID {
		return fmt.Errorf("%w: pending prescription belongs to another doctor", util.ErrForbidden)
	}

	coll := db.OpenCollections(util.PendingPrescriptionCollection)
	if _, err := db.DeleteOne(ctx, coll, bson.M{"_id": pendingID}); err != nil {
		log.Println("Error from deleteOne:", err)
		return util.ErrStorage
	}
	return nil
}

func populatePending(ctx context.Context, pending *models.PendingPrescription) (bson.M, error) {
	doctor := bson.M{}
	if err := findAccount(ctx, util.DoctorCollection, bson.M{"_id": pending.DoctorID}, &doctor); err != nil {
		return nil, err
	}
	patient := bson.M{}
	if err := findAccount(ctx, util.PatientCollection, bson.M{"_id": pending.PatientID}, &patient); err != nil {
		return nil, err
	}

	drugColl := db.OpenCollections(util.DrugCollection)
	drugs := []models.Drug{}
	for _, drugID := range pending.Drugs {
		drug := models.Drug{}
		err := db.FindOne(ctx, drugColl, bson.M{"_id": drugID}, &drug)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			log.Println("Error from findOne:", err)
			return nil, util.ErrStorage
		}
		drugs = append(drugs, drug)
	}

	return bson.M{
		"id":      pending.ID,
		"doctor":  sanitize(doctor),
		"patient": sanitize(patient),
		"drugs":   drugs,
	}, nil
}
