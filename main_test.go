package main

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWiresEverything(t *testing.T) {
	gin.SetMode(gin.TestMode)

	origConnect, origRun, origIsTest := connectDB, runServer, isTest
	defer func() { connectDB, runServer, isTest = origConnect, origRun, origIsTest }()
	isTest = true

	var gotURI, gotDB string
	connectDB = func(uri, dbName string) error {
		gotURI, gotDB = uri, dbName
		return nil
	}

	var engine *gin.Engine
	var gotAddr string
	runServer = func(r *gin.Engine, addr string) error {
		engine, gotAddr = r, addr
		return nil
	}

	t.Setenv("PORT", "6001")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "carelink_test")
	t.Setenv("REDIS_ADDR", "")

	run()

	assert.Equal(t, "mongodb://localhost:27017", gotURI)
	assert.Equal(t, "carelink_test", gotDB)
	assert.Equal(t, ":6001", gotAddr)

	require.NotNil(t, engine)
	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"POST /doc/signUp",
		"POST /doc/signIn",
		"POST /pat/signUp",
		"POST /ast/signIn",
		"GET /drug/",
		"POST /drug/addMany",
		"POST /pre/add",
		"POST /pendingPrescription/add",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}
}
