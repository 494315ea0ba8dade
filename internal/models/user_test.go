package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHasConversationWith(t *testing.T) {
	known := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	u := &User{Messages: []primitive.ObjectID{known}}

	assert.True(t, u.HasConversationWith(known))
	assert.False(t, u.HasConversationWith(stranger))
	assert.False(t, (&User{}).HasConversationWith(known))
}
