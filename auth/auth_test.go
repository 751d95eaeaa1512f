package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"CareLink360/config"
	"CareLink360/role"
	"CareLink360/util"
)

func newAuthRouter(roles ...role.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, util.SuccessResponse(p.ID.Hex()))
	})
	r.GET("/whoami", handlers...)
	return r
}

func TestJWTAuthAcceptsLiveToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	id := primitive.NewObjectID()
	token, err := Sign(id, role.Doctor)
	require.NoError(t, err)

	orig := findByToken
	defer func() { findByToken = orig }()
	var gotCollection string
	findByToken = func(ctx context.Context, collection string, gotID primitive.ObjectID, gotToken string) error {
		gotCollection = collection
		assert.Equal(t, id, gotID)
		assert.Equal(t, token, gotToken)
		return nil
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newAuthRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.DoctorCollection, gotCollection)
	assert.Contains(t, w.Body.String(), id.Hex())
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	newAuthRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsRevokedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	token, err := Sign(primitive.NewObjectID(), role.Patient)
	require.NoError(t, err)

	orig := findByToken
	defer func() { findByToken = orig }()
	findByToken = func(ctx context.Context, collection string, id primitive.ObjectID, tok string) error {
		return fmt.Errorf("%w: no matching session", util.ErrNotFound)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newAuthRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	token, err := Sign(primitive.NewObjectID(), role.Assistant)
	require.NoError(t, err)

	orig := findByToken
	defer func() { findByToken = orig }()
	findByToken = func(ctx context.Context, collection string, id primitive.ObjectID, tok string) error {
		return nil
	}

	cases := []struct {
		name  string
		roles []role.Role
		want  int
	}{
		{"allowed", []role.Role{role.Assistant}, http.StatusOK},
		{"allowed among several", []role.Role{role.Doctor, role.Assistant}, http.StatusOK},
		{"forbidden", []role.Role{role.Doctor}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			newAuthRouter(tc.roles...).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
