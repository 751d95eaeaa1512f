package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"CareLink360/cache"
	"CareLink360/db"
	"CareLink360/models"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func getPrescription(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	prescription := &models.Prescription{}
	coll := db.OpenCollections(util.PrescriptionCollection)
	err := db.FindOne(ctx, coll, bson.M{"_id": id}, prescription)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: prescription not found", util.ErrNotFound)
	}
	if err != nil {
		log.Println("Error from findOne:", err)
		return nil, util.ErrStorage
	}
	return prescription, nil
}

/*
* Every drug name must resolve within the doctor's catalog, all-or-nothing
* The prescription id is pushed onto the patient and a first prescription
* also links the pair
 */
func CreatePrescription(ctx context.Context, doctorID, patientID primitive.ObjectID, drugNames []string) (*models.Prescription, error) {
	drugIDs, err := resolveDrugNames(ctx, doctorID, drugNames)
	if err != nil {
		return nil, err
	}
	return createPrescriptionFromIDs(ctx, doctorID, patientID, drugIDs)
}

func createPrescriptionFromIDs(ctx context.Context, doctorID, patientID primitive.ObjectID, drugIDs []primitive.ObjectID) (*models.Prescription, error) {
	patient, err := GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		ID:        primitive.NewObjectID(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Drugs:     drugIDs,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	coll := db.OpenCollections(util.PrescriptionCollection)
	if _, err := db.CreateOne(ctx, coll, prescription); err != nil {
		log.Println("Error from createOne:", err)
		return nil, util.ErrStorage
	}

	if err := addToSet(ctx, util.PatientCollection, patient.ID, "prescriptions", prescription.ID); err != nil {
		log.Println("Error while adding prescription to patient:", err)
		return nil, util.ErrPartialLink
	}
	if err := ensureLinked(ctx, doctor, patient); err != nil {
		log.Println("Error while linking doctor and patient:", err)
		return nil, err
	}
	return prescription, nil
}

/*
* Replaces the whole drug set after re-resolving every name
 */
func UpdatePrescriptionDrugs(ctx context.Context, doctorID, prescriptionID primitive.ObjectID, drugNames []string) (*models.Prescription, error) {
	prescription, err := getPrescription(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: prescription belongs to another doctor", util.ErrForbidden)
	}

	drugIDs, err := resolveDrugNames(ctx, doctorID, drugNames)
	if err != nil {
		return nil, err
	}

	coll := db.OpenCollections(util.PrescriptionCollection)
	update := bson.M{"$set": bson.M{"drugs": drugIDs, "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": prescriptionID}, update); err != nil {
		log.Println("Error from updateOne:", err)
		return nil, util.ErrStorage
	}
	if err := cache.Delete(ctx, util.PrescriptionKey+prescriptionID.Hex()); err != nil {
		log.Println("Error from cache delete:", err)
	}

	prescription.Drugs = drugIDs
	return prescription, nil
}

// remainingFromDoctor reports how many of the patient's prescriptions were
// written by the given doctor, after the deletion already happened.
func remainingFromDoctor(ctx context.Context, doctorID, patientID primitive.ObjectID) (int64, error) {
	coll := db.OpenCollections(util.PrescriptionCollection)
	return db.Count(ctx, coll, bson.M{"doctor": doctorID, "patient": patientID})
}

/*
* Remove the document, pull the id off the patient and, when no prescription
* from that doctor remains, unlink the pair on both sides
 */
func DeletePrescription(ctx context.Context, doctorID, prescriptionID primitive.ObjectID) error {
	prescription, err := getPrescription(ctx, prescriptionID)
	if err != nil {
		return err
	}
	if prescription.DoctorID != doctorID {
		return fmt.Errorf("%w: prescription belongs to another doctor", util.ErrForbidden)
	}

	coll := db.OpenCollections(util.PrescriptionCollection)
	if _, err := db.DeleteOne(ctx, coll, bson.M{"_id": prescriptionID}); err != nil {
		log.Println("Error from deleteOne:", err)
		return util.ErrStorage
	}
	if err := cache.Delete(ctx, util.PrescriptionKey+prescriptionID.Hex()); err != nil {
		log.Println("Error from cache delete:", err)
	}

	if err := pullFromSet(ctx, util.PatientCollection, prescription.PatientID, "prescriptions", prescription.ID); err != nil {
		log.Println("Error while removing prescription from patient:", err)
		return util.ErrPartialLink
	}

	remaining, err := remainingFromDoctor(ctx, prescription.DoctorID, prescription.PatientID)
	if err != nil {
		log.Println("Error from count:", err)
		return util.ErrStorage
	}
	if remaining == 0 {
		if err := pullFromSet(ctx, util.PatientCollection, prescription.PatientID, "doctors", prescription.DoctorID); err != nil {
			log.Println("Error while removing doctor from patient:", err)
			return util.ErrPartialLink
		}
		if err := pullFromSet(ctx, util.DoctorCollection, prescription.DoctorID, "patients", prescription.PatientID); err != nil {
			log.Println("Error while removing patient from doctor:", err)
			return util.ErrPartialLink
		}
	}
	return nil
}

/*
* The drug must exist and belong to the prescribing doctor
 */
func AddDrugToPrescription(ctx context.Context, doctorID, prescriptionID, drugID primitive.ObjectID) (*models.Prescription, error) {
	prescription, err := getPrescription(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: prescription belongs to another doctor", util.ErrForbidden)
	}
	if _, err := GetDrug(ctx, doctorID, drugID); err != nil {
		return nil, err
	}
	if containsID(prescription.Drugs, drugID) {
		return nil, fmt.Errorf("%w: drug already on prescription", util.ErrAlreadyLinked)
	}

	coll := db.OpenCollections(util.PrescriptionCollection)
	update := bson.M{
		"$addToSet": bson.M{"drugs": drugID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": prescriptionID}, update); err != nil {
		log.Println("Error from updateOne:", err)
		return nil, util.ErrStorage
	}
	if err := cache.Delete(ctx, util.PrescriptionKey+prescriptionID.Hex()); err != nil {
		log.Println("Error from cache delete:", err)
	}

	prescription.Drugs = append(prescription.Drugs, drugID)
	return prescription, nil
}

// Removal compares drug ids, so the entry actually disappears.
func RemoveDrugFromPrescription(ctx context.Context, doctorID, prescriptionID, drugID primitive.ObjectID) (*models.Prescription, error) {
	prescription, err := getPrescription(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: prescription belongs to another doctor", util.ErrForbidden)
	}
	if !containsID(prescription.Drugs, drugID) {
		return nil, fmt.Errorf("%w: drug not on prescription", util.ErrNotFound)
	}

	coll := db.OpenCollections(util.PrescriptionCollection)
	update := bson.M{
		"$pull": bson.M{"drugs": drugID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": prescriptionID}, update); err != nil {
		log.Println("Error from updateOne:", err)
		return nil, util.ErrStorage
	}
	if err := cache.Delete(ctx, util.PrescriptionKey+prescriptionID.Hex()); err != nil {
		log.Println("Error from cache delete:", err)
	}

	prescription.Drugs = removeID(prescription.Drugs, drugID)
	return prescription, nil
}

/*
* Ownership is checked on the loaded prescription before the cache is consulted,
* then doctor, patient and each drug are fetched by id and the accounts sanitized
 */
func GetPrescriptionPopulated(ctx context.Context, doctorID, prescriptionID primitive.ObjectID) (bson.M, error) {
	prescription, err := getPrescription(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: prescription belongs to another doctor", util.ErrForbidden)
	}

	key := util.PrescriptionKey + prescriptionID.Hex()
	cached := bson.M{}
	if hit, err := cache.Get(ctx, key, &cached); err != nil {
		log.Println("Error from cache get:", err)
	} else if hit {
		return cached, nil
	}

	populated, err := populatePrescription(ctx, prescription)
	if err != nil {
		return nil, err
	}

	if err := cache.Set(ctx, key, populated); err != nil {
		log.Println("Error from cache set:", err)
	}
	return populated, nil
}

func populatePrescription(ctx context.Context, prescription *models.Prescription) (bson.M, error) {
	doctor := bson.M{}
	if err := findAccount(ctx, util.DoctorCollection, bson.M{"_id": prescription.DoctorID}, &doctor); err != nil {
		return nil, err
	}
	patient := bson.M{}
	if err := findAccount(ctx, util.PatientCollection, bson.M{"_id": prescription.PatientID}, &patient); err != nil {
		return nil, err
	}

	drugColl := db.OpenCollections(util.DrugCollection)
	drugs := []models.Drug{}
	for _, drugID := range prescription.Drugs {
		drug := models.Drug{}
		err := db.FindOne(ctx, drugColl, bson.M{"_id": drugID}, &drug)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Drug deleted after prescribing; skip rather than fail the read.
			continue
		}
		if err != nil {
			log.Println("Error from findOne:", err)
			return nil, util.ErrStorage
		}
		drugs = append(drugs, drug)
	}

	return bson.M{
		"id":        prescription.ID,
		"doctor":    sanitize(doctor),
		"patient":   sanitize(patient),
		"drugs":     drugs,
		"createdAt": prescription.CreatedAt,
		"updatedAt": prescription.UpdatedAt,
	}, nil
}

// ListPatientPrescriptions returns the patient's prescriptions with doctor
// and drugs populated.
func ListPatientPrescriptions(ctx context.Context, patientID primitive.ObjectID) ([]bson.M, error) {
	prescriptions := []models.Prescription{}
	coll := db.OpenCollections(util.PrescriptionCollection)
	if err := db.FindAll(ctx, coll, bson.M{"patient": patientID}, &prescriptions); err != nil {
		log.Println("Error from findAll:", err)
		return nil, util.ErrStorage
	}

	out := []bson.M{}
	for i := range prescriptions {
		populated, err := populatePrescription(ctx, &prescriptions[i])
		if err != nil {
			return nil, err
		}
		out = append(out, populated)
	}
	return out, nil
}
