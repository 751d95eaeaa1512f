package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// A drug is visible and editable only by the doctor that created it.
type Drug struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	Usage             string             `json:"usage" bson:"usage"`
	SideEffects       []string           `json:"sideEffects" bson:"sideEffects"`
	Contraindications []string           `json:"contraindications" bson:"contraindications"`
	SimilarDrugs      []string           `json:"similarDrugs" bson:"similarDrugs"`
	DoctorID          primitive.ObjectID `json:"doctorId" bson:"doctorId"`
}
