package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PendingPrescription is staged by an assistant and waits for the doctor to
// approve it into a Prescription or reject it.
type PendingPrescription struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	PatientID primitive.ObjectID   `json:"patientId" bson:"patientId"`
	DoctorID  primitive.ObjectID   `json:"doctorId" bson:"doctorId"`
	Drugs     []primitive.ObjectID `json:"drugs" bson:"drugs"`
}
