package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Prescription struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	PatientID primitive.ObjectID   `json:"patientId" bson:"patient"`
	DoctorID  primitive.ObjectID   `json:"doctorId" bson:"doctor"`
	Drugs     []primitive.ObjectID `json:"drugs" bson:"drugs"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}
