package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Patient struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name              string               `json:"name" bson:"name"`
	Email             string               `json:"email" bson:"email"`
	Password          string               `json:"-" bson:"password"`
	PhoneNumber       string               `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Birthday          *time.Time           `json:"birthday,omitempty" bson:"birthday,omitempty"`
	Age               int                  `json:"age,omitempty" bson:"age,omitempty"`
	NationalityNumber string               `json:"-" bson:"nationalityNumber,omitempty"`
	Address           string               `json:"address,omitempty" bson:"address,omitempty"`
	Gender            string               `json:"gender,omitempty" bson:"gender,omitempty"`
	Tokens            []SessionToken       `json:"-" bson:"tokens"`
	VerificationCode  string               `json:"-" bson:"verificationCode,omitempty"`
	IsVerified        bool                 `json:"-" bson:"isVerified"`
	Doctors           []primitive.ObjectID `json:"-" bson:"doctors"`
	Prescriptions     []primitive.ObjectID `json:"-" bson:"prescriptions"`
	CreatedAt         time.Time            `json:"-" bson:"createdAt"`
	UpdatedAt         time.Time            `json:"-" bson:"updatedAt"`
}
