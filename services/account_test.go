package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"CareLink360/config"
	"CareLink360/db"
	"CareLink360/models"
	"CareLink360/role"
	"CareLink360/util"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validatePassword("s3cret-enough"))
	assert.ErrorIs(t, validatePassword("short"), util.ErrInvalidInput)
	assert.ErrorIs(t, validatePassword("mypassword1"), util.ErrInvalidInput)
	assert.ErrorIs(t, validatePassword("PASSWORD123"), util.ErrInvalidInput)
}

func TestValidateUpdates(t *testing.T) {
	allowed := updatableFields(role.Doctor)

	assert.NoError(t, validateUpdates(map[string]interface{}{"name": "Dr. Lee", "department": "Cardiology"}, allowed))
	assert.ErrorIs(t, validateUpdates(map[string]interface{}{"isVerified": true}, allowed), util.ErrInvalidInput)
	assert.ErrorIs(t, validateUpdates(map[string]interface{}{"tokens": []string{}}, allowed), util.ErrInvalidInput)
	assert.ErrorIs(t, validateUpdates(map[string]interface{}{}, allowed), util.ErrInvalidInput)
}

func TestUpdatableFieldsPerRole(t *testing.T) {
	assert.Contains(t, updatableFields(role.Doctor), "department")
	assert.NotContains(t, updatableFields(role.Assistant), "department")
	assert.Contains(t, updatableFields(role.Patient), "age")
	assert.NotContains(t, updatableFields(role.Doctor), "age")
	assert.Nil(t, updatableFields(role.Role("admin")))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-enough")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-enough", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret-enough"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong-guess"), util.ErrUnauthenticated)
}

func TestSanitize(t *testing.T) {
	doc := bson.M{
		"name":             "Dr. Lee",
		"email":            "lee@carelink.example",
		"password":         "hash",
		"tokens":           []bson.M{{"token": "abc"}},
		"verificationCode": "123456",
		"patients":         []string{},
	}
	sanitize(doc)

	assert.Equal(t, bson.M{"name": "Dr. Lee", "email": "lee@carelink.example"}, doc)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "lee@carelink.example", normalizeEmail("  Lee@CareLink.Example "))
}

func TestUpdateAccountRejectsTakenEmail(t *testing.T) {
	resetDB(t)
	accountID := primitive.NewObjectID()

	var gotFilter bson.M
	db.Count = func(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
		gotFilter = filter
		return 1, nil
	}
	updated := false
	db.UpdateOne = func(ctx context.Context, coll *mongo.Collection, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
		updated = true
		return &mongo.UpdateResult{MatchedCount: 1}, nil
	}

	err := UpdateAccount(context.Background(), role.Patient, accountID, map[string]interface{}{"email": " Taken@CareLink.Example "})
	assert.ErrorIs(t, err, util.ErrAlreadyExists)
	assert.False(t, updated)

	assert.Equal(t, "taken@carelink.example", gotFilter["email"])
	// The account's own document must not block renaming back to itself.
	assert.Equal(t, bson.M{"$ne": accountID}, gotFilter["_id"])
}

func TestUpdateAccountAllowsFreeEmail(t *testing.T) {
	resetDB(t)
	accountID := primitive.NewObjectID()

	db.Count = func(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
		return 0, nil
	}
	var gotUpdate bson.M
	db.UpdateOne = func(ctx context.Context, coll *mongo.Collection, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
		gotUpdate = update
		return &mongo.UpdateResult{MatchedCount: 1}, nil
	}

	err := UpdateAccount(context.Background(), role.Patient, accountID, map[string]interface{}{"email": "Free@CareLink.Example"})
	require.NoError(t, err)
	assert.Equal(t, "free@carelink.example", gotUpdate["$set"].(bson.M)["email"])
}

func TestSignUpIssuesFirstSessionToken(t *testing.T) {
	resetDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	origSend := sendMail
	defer func() { sendMail = origSend }()
	mailed := make(chan string, 1)
	sendMail = func(to, subject, body string) error {
		mailed <- to
		return nil
	}

	accountID := primitive.NewObjectID()
	db.Count = func(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
		return 0, nil
	}
	db.CreateOne = func(ctx context.Context, coll *mongo.Collection, doc interface{}) (*mongo.InsertOneResult, error) {
		return &mongo.InsertOneResult{InsertedID: accountID}, nil
	}
	var pushed bson.M
	db.UpdateOne = func(ctx context.Context, coll *mongo.Collection, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
		pushed = update
		return &mongo.UpdateResult{MatchedCount: 1}, nil
	}

	patient := &models.Patient{Name: "Pat", Email: "pat@carelink.example", Age: 30}
	id, token, code, err := SignUpPatient(context.Background(), patient, "s3cret-enough")
	require.NoError(t, err)
	assert.Equal(t, accountID, id)
	assert.Len(t, code, 6)
	require.NotEmpty(t, token)

	assert.Equal(t, bson.M{"$push": bson.M{"tokens": bson.M{"token": token}}}, pushed)

	select {
	case to := <-mailed:
		assert.Equal(t, "pat@carelink.example", to)
	case <-time.After(2 * time.Second):
		t.Fatal("verification mail was never sent")
	}
}
