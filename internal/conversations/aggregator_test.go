package conversations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuanvm/social-network/backend/internal/models"
)

func newUser(username string) models.User {
	return models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		FullName: "User " + username,
	}
}

func messageAt(from, to primitive.ObjectID, text string, at time.Time) models.Message {
	return models.Message{
		ID:        primitive.NewObjectID(),
		Sender:    from,
		Receiver:  to,
		Message:   text,
		CreatedAt: at,
	}
}

func TestAggregatePrefersNewerDirection(t *testing.T) {
	owner := newUser("owner")
	partner := newUser("partner")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	inbound := map[string]models.Message{
		partner.ID.Hex(): messageAt(partner.ID, owner.ID, "hello", base),
	}
	outbound := map[string]models.Message{
		partner.ID.Hex(): messageAt(owner.ID, partner.ID, "reply", base.Add(time.Minute)),
	}

	summaries := Aggregate([]models.User{partner}, inbound, outbound)
	require.Len(t, summaries, 1)
	assert.Equal(t, "reply", summaries[0].LastMessage)
	assert.True(t, summaries[0].LastMessageSender)

	// Flip which direction is newer.
	inbound[partner.ID.Hex()] = messageAt(partner.ID, owner.ID, "newest", base.Add(time.Hour))
	summaries = Aggregate([]models.User{partner}, inbound, outbound)
	require.Len(t, summaries, 1)
	assert.Equal(t, "newest", summaries[0].LastMessage)
	assert.False(t, summaries[0].LastMessageSender)
}

func TestAggregateOrdersChronologically(t *testing.T) {
	owner := newUser("owner")
	older := newUser("older")
	newer := newUser("newer")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// The older conversation has the lexicographically larger timestamp
	// string fields would sort wrongly on; ordering must follow time.
	inbound := map[string]models.Message{
		older.ID.Hex(): messageAt(older.ID, owner.ID, "old", base),
		newer.ID.Hex(): messageAt(newer.ID, owner.ID, "new", base.Add(48*time.Hour)),
	}

	summaries := Aggregate([]models.User{older, newer}, inbound, nil)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID.Hex(), summaries[0].ID)
	assert.Equal(t, older.ID.Hex(), summaries[1].ID)
}

func TestAggregateStalePartnerSortsLast(t *testing.T) {
	owner := newUser("owner")
	active := newUser("active")
	stale := newUser("stale")

	inbound := map[string]models.Message{
		active.ID.Hex(): messageAt(active.ID, owner.ID, "hi", time.Now()),
	}

	summaries := Aggregate([]models.User{stale, active}, inbound, nil)
	require.Len(t, summaries, 2)
	assert.Equal(t, active.ID.Hex(), summaries[0].ID)
	assert.Equal(t, stale.ID.Hex(), summaries[1].ID)
	assert.True(t, summaries[1].LastMessageCreatedAt.IsZero())
	assert.Empty(t, summaries[1].LastMessage)
}

func TestAggregateTieBreaksOnUsername(t *testing.T) {
	users := []models.User{newUser("zulu"), newUser("alpha"), newUser("mike")}

	summaries := Aggregate(users, nil, nil)
	require.Len(t, summaries, 3)
	assert.Equal(t, "alpha", summaries[0].Username)
	assert.Equal(t, "mike", summaries[1].Username)
	assert.Equal(t, "zulu", summaries[2].Username)
}

func TestFromMessageDirection(t *testing.T) {
	owner := newUser("owner")
	partner := newUser("partner")
	msg := messageAt(owner.ID, partner.ID, "sent by owner", time.Now())

	summary := FromMessage(&partner, &msg, true)
	assert.Equal(t, partner.ID.Hex(), summary.ID)
	assert.True(t, summary.LastMessageSender)
	assert.Equal(t, "sent by owner", summary.LastMessage)
}
