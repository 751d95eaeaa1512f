package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"CareLink360/config"
	"CareLink360/role"
	"CareLink360/util"
)

func TestSignParseRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	id := primitive.NewObjectID()
	token, err := Sign(id, role.Doctor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), claims.AccountID)
	assert.Equal(t, string(role.Doctor), claims.Role)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	_, err := Parse("not.a.token")
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	config.Load()
	token, err := Sign(primitive.NewObjectID(), role.Patient)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	config.Load()
	_, err = Parse(token)
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
}
