package services

import (
	"context"
	"fmt"
	"log"

	"CareLink360/db"
	"CareLink360/models"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Link maintenance between account pairs. Every operation writes the owning
// side first; if the referencing side then fails the first write stays and the
// caller gets ErrPartialLink. The already-contains guard keeps retries
// idempotent.

func containsID(list []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func addToSet(ctx context.Context, collection string, id primitive.ObjectID, field string, value primitive.ObjectID) error {
	coll := db.OpenCollections(collection)
	_, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{field: value}})
	return err
}

func pullFromSet(ctx context.Context, collection string, id primitive.ObjectID, field string, value primitive.ObjectID) error {
	coll := db.OpenCollections(collection)
	_, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, bson.M{"$pull": bson.M{field: value}})
	return err
}

/*
* Resolve the patient by email and the doctor by id
* Guard on the doctor's list, then doctor side first, patient side second
 */
func LinkPatientToDoctor(ctx context.Context, doctorID primitive.ObjectID, patientEmail string) (*models.Patient, error) {
	patient, err := GetPatientByEmail(ctx, patientEmail)
	if err != nil {
		return nil, err
	}
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if containsID(doctor.Patients, patient.ID) {
		return nil, fmt.Errorf("%w: patient already in doctor's list", util.ErrAlreadyLinked)
	}

	if err := addToSet(ctx, util.DoctorCollection, doctor.ID, "patients", patient.ID); err != nil {
		log.Println("Error while adding patient to doctor:", err)
		return nil, util.ErrStorage
	}
	if err := addToSet(ctx, util.PatientCollection, patient.ID, "doctors", doctor.ID); err != nil {
		log.Println("Error while adding doctor to patient:", err)
		return nil, util.ErrPartialLink
	}
	return patient, nil
}

// Both sides are cleaned up on removal, unlike the historical behavior that
// only touched the doctor's list.
func UnlinkPatientFromDoctor(ctx context.Context, doctorID, patientID primitive.ObjectID) error {
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if !containsID(doctor.Patients, patientID) {
		return fmt.Errorf("%w: patient not in doctor's list", util.ErrNotFound)
	}

	if err := pullFromSet(ctx, util.DoctorCollection, doctor.ID, "patients", patientID); err != nil {
		log.Println("Error while removing patient from doctor:", err)
		return util.ErrStorage
	}
	if err := pullFromSet(ctx, util.PatientCollection, patientID, "doctors", doctor.ID); err != nil {
		log.Println("Error while removing doctor from patient:", err)
		return util.ErrPartialLink
	}
	return nil
}

func LinkAssistantToDoctor(ctx context.Context, doctorID primitive.ObjectID, assistantEmail string) (*models.Doctor, error) {
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	assistant, err := GetAssistantByEmail(ctx, assistantEmail)
	if err != nil {
		return nil, err
	}

	if containsID(doctor.Assistants, assistant.ID) {
		return nil, fmt.Errorf("%w: assistant already in doctor's list", util.ErrAlreadyLinked)
	}

	if err := addToSet(ctx, util.DoctorCollection, doctor.ID, "assistants", assistant.ID); err != nil {
		log.Println("Error while adding assistant to doctor:", err)
		return nil, util.ErrStorage
	}
	if err := addToSet(ctx, util.AssistantCollection, assistant.ID, "doctors", doctor.ID); err != nil {
		log.Println("Error while adding doctor to assistant:", err)
		return nil, util.ErrPartialLink
	}

	doctor.Assistants = append(doctor.Assistants, assistant.ID)
	return doctor, nil
}

func UnlinkAssistantFromDoctor(ctx context.Context, doctorID, assistantID primitive.ObjectID) error {
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if _, err := GetAssistantByID(ctx, assistantID); err != nil {
		return err
	}
	if !containsID(doctor.Assistants, assistantID) {
		return fmt.Errorf("%w: assistant not in doctor's list", util.ErrNotFound)
	}

	if err := pullFromSet(ctx, util.DoctorCollection, doctor.ID, "assistants", assistantID); err != nil {
		log.Println("Error while removing assistant from doctor:", err)
		return util.ErrStorage
	}
	if err := pullFromSet(ctx, util.AssistantCollection, assistantID, "doctors", doctor.ID); err != nil {
		log.Println("Error while removing doctor from assistant:", err)
		return util.ErrPartialLink
	}
	return nil
}

// LinkPatientForAssistant links a patient to one of the doctors the
// assistant works for, on that doctor's behalf.
func LinkPatientForAssistant(ctx context.Context, assistantID primitive.ObjectID, doctorEmail, patientEmail string) (*models.Patient, error) {
	assistant, err := GetAssistantByID(ctx, assistantID)
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
	return LinkPatientToDoctor(ctx, doctor.ID, patientEmail)
}

// ensureLinked links the pair unless they already are. Used by the
// prescription path where a first prescription implies the relationship.
func ensureLinked(ctx context.Context, doctor *models.Doctor, patient *models.Patient) error {
	if containsID(doctor.Patients, patient.ID) {
		return nil
	}
	if err := addToSet(ctx, util.DoctorCollection, doctor.ID, "patients", patient.ID); err != nil {
		return util.ErrStorage
	}
	if err := addToSet(ctx, util.PatientCollection, patient.ID, "doctors", doctor.ID); err != nil {
		return util.ErrPartialLink
	}
	return nil
}
