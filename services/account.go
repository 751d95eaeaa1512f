package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"CareLink360/db"
	"CareLink360/models"
	"CareLink360/role"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fields that never leave the API, regardless of role.
var sensitiveFields = []string{
	"password", "tokens", "verificationCode", "isVerified",
	"prescriptions", "doctors", "patients", "assistants",
	"nationalityNumber", "createdAt", "updatedAt",
}

func sanitize(doc bson.M) bson.M {
	for _, field := range sensitiveFields {
		delete(doc, field)
	}
	return doc
}

// Update whitelists per role. Any other key fails the whole update.
var (
	doctorUpdatable    = []string{"name", "email", "password", "department", "phoneNumber", "address", "gender", "birthday", "nationalityNumber"}
	assistantUpdatable = []string{"name", "email", "password", "phoneNumber", "address", "gender", "birthday", "nationalityNumber"}
	patientUpdatable   = []string{"name", "email", "password", "phoneNumber", "address", "gender", "birthday", "nationalityNumber", "age"}
)

func updatableFields(r role.Role) []string {
	switch r {
	case role.Doctor:
		return doctorUpdatable
	case role.Assistant:
		return assistantUpdatable
	case role.Patient:
		return patientUpdatable
	}
	return nil
}

func validateUpdates(data map[string]interface{}, allowed []string) error {
	for key := range data {
		ok := false
		for _, field := range allowed {
			if key == field {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: field %q is not updatable", util.ErrInvalidInput, key)
		}
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: no fields to update", util.ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 7 {
		return fmt.Errorf("%w: password must be at least 7 characters long", util.ErrInvalidInput)
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return fmt.Errorf("%w: password must not contain 'password'", util.ErrInvalidInput)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("%w: unable to login", util.ErrUnauthenticated)
	}
	return nil
}

// findAccount wraps FindOne, mapping a missing document to ErrNotFound.
func findAccount(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	coll := db.OpenCollections(collection)
	err := db.FindOne(ctx, coll, filter, out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: account not found", util.ErrNotFound)
	}
	if err != nil {
		log.Println("Error from findOne:", err)
		return util.ErrStorage
	}
	return nil
}

func GetDoctorByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	doctor := &models.Doctor{}
	if err := findAccount(ctx, util.DoctorCollection, bson.M{"_id": id}, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func GetDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	doctor := &models.Doctor{}
	if err := findAccount(ctx, util.DoctorCollection, bson.M{"email": normalizeEmail(email)}, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func GetAssistantByID(ctx context.Context, id primitive.ObjectID) (*models.Assistant, error) {
	assistant := &models.Assistant{}
	if err := findAccount(ctx, util.AssistantCollection, bson.M{"_id": id}, assistant); err != nil {
		return nil, err
	}
	return assistant, nil
}

func GetAssistantByEmail(ctx context.Context, email string) (*models.Assistant, error) {
	assistant := &models.Assistant{}
	if err := findAccount(ctx, util.AssistantCollection, bson.M{"email": normalizeEmail(email)}, assistant); err != nil {
		return nil, err
	}
	return assistant, nil
}

func GetPatientByID(ctx context.Context, id primitive.ObjectID) (*models.Patient, error) {
	patient := &models.Patient{}
	if err := findAccount(ctx, util.PatientCollection, bson.M{"_id": id}, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func GetPatientByEmail(ctx context.Context, email string) (*models.Patient, error) {
	patient := &models.Patient{}
	if err := findAccount(ctx, util.PatientCollection, bson.M{"email": normalizeEmail(email)}, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

/*
* Reject duplicate emails within the role's collection
* Hash the password, generate the verification code
* Insert unverified, open the first session and mail the code
 */
func registerAccount(ctx context.Context, r role.Role, email, password string, doc bson.M) (primitive.ObjectID, string, string, error) {
	if err := validatePassword(password); err != nil {
		return primitive.NilObjectID, "", "", err
	}

	coll := db.OpenCollections(r.Collection())
	count, err := db.Count(ctx, coll, bson.M{"email": email})
	if err != nil {
		log.Println("Error from count:", err)
		return primitive.NilObjectID, "", "", util.ErrStorage
	}
	if count > 0 {
		return primitive.NilObjectID, "", "", fmt.Errorf("%w: account with this email", util.ErrAlreadyExists)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Println("Error from hashPassword:", err)
		return primitive.NilObjectID, "", "", util.ErrStorage
	}
	code := NewVerificationCode()

	doc["email"] = email
	doc["password"] = hashed
	doc["verificationCode"] = code
	doc["isVerified"] = false
	doc["tokens"] = []bson.M{}
	doc["createdAt"] = time.Now()
	doc["updatedAt"] = time.Now()

	inserted, err := db.CreateOne(ctx, coll, doc)
	if err != nil {
		log.Println("Error from createOne:", err)
		return primitive.NilObjectID, "", "", util.ErrStorage
	}
	id, _ := inserted.InsertedID.(primitive.ObjectID)

	token, err := IssueToken(ctx, id, r)
	if err != nil {
		return primitive.NilObjectID, "", "", err
	}

	SendVerificationCode(email, code)
	return id, token, code, nil
}

func SignUpDoctor(ctx context.Context, doctor *models.Doctor, password string) (primitive.ObjectID, string, string, error) {
	doc := bson.M{
		"name":       doctor.Name,
		"department": doctor.Department,
		"patients":   []primitive.ObjectID{},
		"assistants": []primitive.ObjectID{},
	}
	addOptionalFields(doc, doctor.PhoneNumber, doctor.Address, doctor.Gender, doctor.NationalityNumber, doctor.Birthday)
	return registerAccount(ctx, role.Doctor, normalizeEmail(doctor.Email), password, doc)
}

func SignUpPatient(ctx context.Context, patient *models.Patient, password string) (primitive.ObjectID, string, string, error) {
	doc := bson.M{
		"name":          patient.Name,
		"age":           patient.Age,
		"doctors":       []primitive.ObjectID{},
		"prescriptions": []primitive.ObjectID{},
	}
	addOptionalFields(doc, patient.PhoneNumber, patient.Address, patient.Gender, patient.NationalityNumber, patient.Birthday)
	return registerAccount(ctx, role.Patient, normalizeEmail(patient.Email), password, doc)
}

// SignUpAssistant registers the assistant under the given doctor and records
// both sides of the link.
func SignUpAssistant(ctx context.Context, doctorID primitive.ObjectID, assistant *models.Assistant, password string) (primitive.ObjectID, string, string, error) {
	doctor, err := GetDoctorByID(ctx, doctorID)
	if err != nil {
		return primitive.NilObjectID, "", "", err
	}

	doc := bson.M{
		"name":    assistant.Name,
		"doctors": []primitive.ObjectID{doctor.ID},
	}
	addOptionalFields(doc, assistant.PhoneNumber, assistant.Address, assistant.Gender, assistant.NationalityNumber, assistant.Birthday)

	id, token, code, err := registerAccount(ctx, role.Assistant, normalizeEmail(assistant.Email), password, doc)
	if err != nil {
		return primitive.NilObjectID, "", "", err
	}

	update := bson.M{"$addToSet": bson.M{"assistants": id}}
	if _, err := db.UpdateOne(ctx, db.OpenCollections(util.DoctorCollection), bson.M{"_id": doctor.ID}, update); err != nil {
		log.Println("Error while linking assistant to doctor:", err)
		return id, token, code, util.ErrPartialLink
	}
	return id, token, code, nil
}

func addOptionalFields(doc bson.M, phone, address, gender, nationality string, birthday *time.Time) {
	if phone != "" {
		doc["phoneNumber"] = phone
	}
	if address != "" {
		doc["address"] = address
	}
	if gender != "" {
		doc["gender"] = gender
	}
	if nationality != "" {
		doc["nationalityNumber"] = nationality
	}
	if birthday != nil {
		doc["birthday"] = *birthday
	}
}

/*
* Compare the submitted code against the stored one
* The code is single-use: it is unset once the account verifies
 */
func VerifyAccount(ctx context.Context, r role.Role, email, code string) error {
	account := bson.M{}
	if err := findAccount(ctx, r.Collection(), bson.M{"email": normalizeEmail(email)}, &account); err != nil {
		return err
	}

	stored, _ := account["verificationCode"].(string)
	if stored == "" || stored != code {
		return util.ErrInvalidCode
	}

	coll := db.OpenCollections(r.Collection())
	update := bson.M{
		"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"verificationCode": ""},
	}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"email": normalizeEmail(email)}, update); err != nil {
		log.Println("Error while verifying the account:", err)
		return util.ErrStorage
	}
	return nil
}

/*
* findByCredentials: email lookup then bcrypt compare
* On success a fresh session token is issued and the sanitized account returned
 */
func SignIn(ctx context.Context, r role.Role, email, password string) (string, bson.M, error) {
	account := bson.M{}
	if err := findAccount(ctx, r.Collection(), bson.M{"email": normalizeEmail(email)}, &account); err != nil {
		return "", nil, fmt.Errorf("%w: unable to login", util.ErrUnauthenticated)
	}

	hash, _ := account["password"].(string)
	if err := CheckPassword(hash, password); err != nil {
		return "", nil, err
	}

	id, ok := account["_id"].(primitive.ObjectID)
	if !ok {
		return "", nil, util.ErrStorage
	}

	token, err := IssueToken(ctx, id, r)
	if err != nil {
		return "", nil, err
	}
	return token, sanitize(account), nil
}

func SignOut(ctx context.Context, accountID primitive.ObjectID, r role.Role, token string) error {
	return RevokeToken(ctx, accountID, r, token)
}

func GetProfile(ctx context.Context, r role.Role, accountID primitive.ObjectID) (bson.M, error) {
	account := bson.M{}
	if err := findAccount(ctx, r.Collection(), bson.M{"_id": accountID}, &account); err != nil {
		return nil, err
	}
	return sanitize(account), nil
}

/*
* Whitelisted fields only, the whole update fails on a disallowed key
* A changed password is re-validated and re-hashed
 */
func UpdateAccount(ctx context.Context, r role.Role, accountID primitive.ObjectID, data map[string]interface{}) error {
	if err := validateUpdates(data, updatableFields(r)); err != nil {
		return err
	}

	if raw, ok := data["password"]; ok {
		password, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: password must be a string", util.ErrInvalidInput)
		}
		if err := validatePassword(password); err != nil {
			return err
		}
		hashed, err := HashPassword(password)
		if err != nil {
			return util.ErrStorage
		}
		data["password"] = hashed
	}
	coll := db.OpenCollections(r.Collection())
	if raw, ok := data["email"]; ok {
		email, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: email must be a string", util.ErrInvalidInput)
		}
		email = normalizeEmail(email)
		// Email stays unique within the role's collection on rename too.
		count, err := db.Count(ctx, coll, bson.M{"email": email, "_id": bson.M{"$ne": accountID}})
		if err != nil {
			log.Println("Error from count:", err)
			return util.ErrStorage
		}
		if count > 0 {
			return fmt.Errorf("%w: account with this email", util.ErrAlreadyExists)
		}
		data["email"] = email
	}
	data["updatedAt"] = time.Now()

	result, err := db.UpdateOne(ctx, coll, bson.M{"_id": accountID}, bson.M{"$set": bson.M(data)})
	if err != nil {
		log.Println("Error from updateOne:", err)
		return util.ErrStorage
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: account not found", util.ErrNotFound)
	}
	return nil
}

func DeleteAccount(ctx context.Context, r role.Role, accountID primitive.ObjectID) error {
	coll := db.OpenCollections(r.Collection())
	result, err := db.DeleteOne(ctx, coll, bson.M{"_id": accountID})
	if err != nil {
		log.Println("Error from deleteOne:", err)
		return util.ErrStorage
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: account not found", util.ErrNotFound)
	}
	return nil
}
