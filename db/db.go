package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	Client = client
	DB = client.Database(dbName)
	log.Println("Database connected")
	return nil
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

// The helpers are package-level vars so service tests can swap them out
// without a running MongoDB.
var (
	OpenCollections = func(name string) *mongo.Collection {
		return DB.Collection(name)
	}

	FindOne = func(ctx context.Context, collection *mongo.Collection, filter bson.M, result interface{}) error {
		return collection.FindOne(ctx, filter).Decode(result)
	}

	FindAll = func(ctx context.Context, collection *mongo.Collection, filter bson.M, results interface{}) error {
		if filter == nil {
			filter = bson.M{}
		}
		cursor, err := collection.Find(ctx, filter)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, results)
	}

	CreateOne = func(ctx context.Context, collection *mongo.Collection, doc interface{}) (*mongo.InsertOneResult, error) {
		return collection.InsertOne(ctx, doc)
	}

	UpdateOne = func(ctx context.Context, collection *mongo.Collection, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
		return collection.UpdateOne(ctx, filter, update)
	}

	UpdateMany = func(ctx context.Context, collection *mongo.Collection, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
		return collection.UpdateMany(ctx, filter, update)
	}

	DeleteOne = func(ctx context.Context, collection *mongo.Collection, filter bson.M) (*mongo.DeleteResult, error) {
		return collection.DeleteOne(ctx, filter)
	}

	DeleteMany = func(ctx context.Context, collection *mongo.Collection, filter bson.M) (*mongo.DeleteResult, error) {
		return collection.DeleteMany(ctx, filter)
	}

	Count = func(ctx context.Context, collection *mongo.Collection, filter bson.M) (int64, error) {
		return collection.CountDocuments(ctx, filter)
	}
)
