package services

import (
	"context"
	"log"

	"CareLink360/auth"
	"CareLink360/db"
	"CareLink360/role"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*
* Sign a token binding the account id and role
* Push it onto the account's session list before returning it
* Multiple tokens per account stay valid independently
 */
func IssueToken(ctx context.Context, accountID primitive.ObjectID, r role.Role) (string, error) {
	token, err := auth.Sign(accountID, r)
	if err != nil {
		log.Println("Error while generating the token:", err)
		return "", err
	}

	collection := db.OpenCollections(r.Collection())
	filter := bson.M{"_id": accountID}
	update := bson.M{"$push": bson.M{"tokens": bson.M{"token": token}}}

	if _, err := db.UpdateOne(ctx, collection, filter, update); err != nil {
		log.Println("Error while persisting the token:", err)
		return "", util.ErrStorage
	}
	return token, nil
}

/*
* Pull exactly the presented token from the session list
* Revoking an absent token is a no-op, other sessions stay valid
 */
func RevokeToken(ctx context.Context, accountID primitive.ObjectID, r role.Role, token string) error {
	collection := db.OpenCollections(r.Collection())
	filter := bson.M{"_id": accountID}
	update := bson.M{"$pull": bson.M{"tokens": bson.M{"token": token}}}

	if _, err := db.UpdateOne(ctx, collection, filter, update); err != nil {
		log.Println("Error while revoking the token:", err)
		return util.ErrStorage
	}
	return nil
}
