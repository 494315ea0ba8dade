// Package conversations builds the conversation list for a user: their
// partner adjacency list merged with the latest message exchanged with each
// partner, most recent first.
package conversations

import (
	"sort"
	"time"

	"github.com/tuanvm/social-network/backend/internal/models"
)

// Summary is one entry of a user's conversation list: the partner's
// identity merged with the metadata of the last message exchanged.
// LastMessageSender is true when the owning user sent that message.
type Summary struct {
	ID                   string    `json:"id"`
	Username             string    `json:"username"`
	FullName             string    `json:"fullName"`
	Image                string    `json:"image,omitempty"`
	IsOnline             bool      `json:"isOnline"`
	Seen                 bool      `json:"seen"`
	LastMessage          string    `json:"lastMessage,omitempty"`
	LastImageMessage     string    `json:"lastImageMessage,omitempty"`
	LastMessageSender    bool      `json:"lastMessageSender"`
	LastMessageCreatedAt time.Time `json:"lastMessageCreatedAt"`
}

// FromMessage builds the summary of a conversation with partner whose last
// message is msg. sentByOwner marks the direction of that message.
func FromMessage(partner *models.User, msg *models.Message, sentByOwner bool) Summary {
	return Summary{
		ID:                   partner.ID.Hex(),
		Username:             partner.Username,
		FullName:             partner.FullName,
		Image:                partner.Image,
		IsOnline:             partner.IsOnline,
		Seen:                 msg.Seen,
		LastMessage:          msg.Message,
		LastImageMessage:     msg.ImageMessage,
		LastMessageSender:    sentByOwner,
		LastMessageCreatedAt: msg.CreatedAt,
	}
}

// Aggregate merges the partner list with the latest message per partner in
// each direction and orders the result chronologically, most recent first.
// When both directions hold a message for a partner the newer one wins, so
// the entry always reflects the latest message regardless of direction.
//
// A partner with no resolvable message (stale adjacency entry) keeps a zero
// timestamp and therefore sorts last. Ties break on username to keep the
// order deterministic.
func Aggregate(partners []models.User, inbound, outbound map[string]models.Message) []Summary {
	summaries := make([]Summary, 0, len(partners))
	for i := range partners {
		partner := &partners[i]
		id := partner.ID.Hex()

		in, hasIn := inbound[id]
		out, hasOut := outbound[id]

		var summary Summary
		switch {
		case hasIn && hasOut:
			if out.CreatedAt.After(in.CreatedAt) {
				summary = FromMessage(partner, &out, true)
			} else {
				summary = FromMessage(partner, &in, false)
			}
		case hasIn:
			summary = FromMessage(partner, &in, false)
		case hasOut:
			summary = FromMessage(partner, &out, true)
		default:
			// Stale adjacency entry: identity only, sorts last.
			summary = Summary{
				ID:       id,
				Username: partner.Username,
				FullName: partner.FullName,
				Image:    partner.Image,
				IsOnline: partner.IsOnline,
			}
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.LastMessageCreatedAt.Equal(b.LastMessageCreatedAt) {
			return a.LastMessageCreatedAt.After(b.LastMessageCreatedAt)
		}
		return a.Username < b.Username
	})
	return summaries
}
