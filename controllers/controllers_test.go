package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Doctor(r)
	Assistant(r)
	Patient(r)
	Drug(r)
	Prescription(r)
	PendingPrescription(r)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignUpRejectsInvalidBody(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name string
		path string
		body string
	}{
		{"doctor missing email", "/doc/signUp", `{"name":"Dr. Lee","password":"s3cret-enough","department":"Cardiology"}`},
		{"doctor bad email", "/doc/signUp", `{"name":"Dr. Lee","email":"nope","password":"s3cret-enough","department":"Cardiology"}`},
		{"doctor bad gender", "/doc/signUp", `{"name":"Dr. Lee","email":"lee@carelink.example","password":"s3cret-enough","department":"Cardiology","gender":"other"}`},
		{"patient missing password", "/pat/signUp", `{"name":"Pat","email":"pat@carelink.example","age":30}`},
		{"not json", "/doc/signUp", `not json at all`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestVerifyRejectsInvalidBody(t *testing.T) {
	r := newTestRouter()

	w := postJSON(r, "/doc/verify", `{"email":"lee@carelink.example"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignInRejectsInvalidBody(t *testing.T) {
	r := newTestRouter()

	w := postJSON(r, "/pat/signIn", `{"email":"pat@carelink.example"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrivateRoutesRequireAuth(t *testing.T) {
	r := newTestRouter()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/doc/"},
		{http.MethodGet, "/pat/doctors"},
		{http.MethodGet, "/drug/"},
		{http.MethodPost, "/pre/add"},
		{http.MethodPost, "/pendingPrescription/add"},
		{http.MethodPost, "/ast/signUp"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}
