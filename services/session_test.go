package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"CareLink360/config"
	"CareLink360/db"
	"CareLink360/role"
)

func TestIssueTokenPushesSession(t *testing.T) {
	resetDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()
	accountID := primitive.NewObjectID()

	var gotFilter, gotUpdate bson.M
	db.UpdateOne = func(ctx context.Context, coll *mongo.Collection, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
		gotFilter, gotUpdate = filter, update
		return &mongo.UpdateResult{MatchedCount: 1}, nil
	}

	token, err := IssueToken(context.Background(), accountID, role.Doctor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, bson.M{"_id": accountID}, gotFilter)
	assert.Equal(t, bson.M{"$push": bson.M{"tokens": bson.M{"token": token}}}, gotUpdate)
}

func TestRevokeTokenPullsOnlyPresentedToken(t *testing.T) {
	resetDB(t)
	accountID := primitive.NewObjectID()

	var gotFilter, gotUpdate bson.M
	db.UpdateOne = func(ctx context.Context, coll *mongo.Collection, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
		gotFilter, gotUpdate = filter, update
		return &mongo.UpdateResult{MatchedCount: 1}, nil
	}

	require.NoError(t, RevokeToken(context.Background(), accountID, role.Patient, "session-one"))

	assert.Equal(t, bson.M{"_id": accountID}, gotFilter)
	// The pull matches the presented token value, so concurrent sessions on
	// the same account keep their own entries.
	assert.Equal(t, bson.M{"$pull": bson.M{"tokens": bson.M{"token": "session-one"}}}, gotUpdate)
}
