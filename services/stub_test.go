package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"CareLink360/cache"
	"CareLink360/db"
)

// resetDB neutralizes the storage seams for a test and restores them on
// cleanup. Tests assign the helpers they care about after calling it.
func resetDB(t *testing.T) {
	t.Helper()
	cache.Init("")

	origOpen := db.OpenCollections
	origFindOne := db.FindOne
	origFindAll := db.FindAll
	origCreateOne := db.CreateOne
	origUpdateOne := db.UpdateOne
	origUpdateMany := db.UpdateMany
	origDeleteOne := db.DeleteOne
	origDeleteMany := db.DeleteMany
	origCount := db.Count
	t.Cleanup(func() {
		db.OpenCollections = origOpen
		db.FindOne = origFindOne
		db.FindAll = origFindAll
		db.CreateOne = origCreateOne
		db.UpdateOne = origUpdateOne
		db.UpdateMany = origUpdateMany
		db.DeleteOne = origDeleteOne
		db.DeleteMany = origDeleteMany
		db.Count = origCount
	})

	db.OpenCollections = func(name string) *mongo.Collection { return nil }
}
