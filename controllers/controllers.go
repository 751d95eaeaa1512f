package controllers

import (
	"fmt"

	"CareLink360/auth"
	"CareLink360/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fail(c *gin.Context, err error) {
	c.JSON(util.StatusFor(err), util.FailedResponse(err))
}

func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		fail(c, util.ErrUnauthenticated)
	}
	return p, ok
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid %s", util.ErrInvalidInput, name)
	}
	return id, nil
}
