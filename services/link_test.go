package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestContainsID(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	list := []primitive.ObjectID{a, b}

	assert.True(t, containsID(list, a))
	assert.True(t, containsID(list, b))
	assert.False(t, containsID(list, c))
	assert.False(t, containsID(nil, a))
}

func TestRemoveID(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	assert.Equal(t, []primitive.ObjectID{a, c}, removeID([]primitive.ObjectID{a, b, c}, b))
	assert.Equal(t, []primitive.ObjectID{a}, removeID([]primitive.ObjectID{a, b, b}, b))
	assert.Equal(t, []primitive.ObjectID{a, b}, removeID([]primitive.ObjectID{a, b}, c))
	assert.Empty(t, removeID([]primitive.ObjectID{b}, b))
}
