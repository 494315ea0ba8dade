package graph

import (
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/tuanvm/social-network/backend/internal/conversations"
	"github.com/tuanvm/social-network/backend/internal/events"
	"github.com/tuanvm/social-network/backend/internal/models"
	"github.com/tuanvm/social-network/backend/internal/repositories"
)

// getMessages returns the full conversation between the authenticated user
// and a partner, oldest first.
func (r *Resolver) getMessages(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}
	authID, err := primitiveID(claims.UserID)
	if err != nil {
		return nil, err
	}
	partnerID, err := primitiveID(stringArg(p, "userId"))
	if err != nil {
		return nil, err
	}
	return r.Messages.GetConversation(p.Context, authID, partnerID)
}

// getConversations builds the authenticated user's conversation list. Each
// entry carries the chronologically latest message exchanged with that
// partner, in either direction.
func (r *Resolver) getConversations(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	user, err := r.Users.GetByID(p.Context, claims.UserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, inputError(errUserNotFound)
		}
		return nil, err
	}
	if len(user.Messages) == 0 {
		return []conversations.Summary{}, nil
	}

	partners, err := r.Users.GetByIDs(p.Context, user.Messages)
	if err != nil {
		return nil, err
	}
	inbound, err := r.Messages.LatestInbound(p.Context, user.ID)
	if err != nil {
		return nil, err
	}
	outbound, err := r.Messages.LatestOutbound(p.Context, user.ID)
	if err != nil {
		return nil, err
	}

	summaries := conversations.Aggregate(partners, inbound, outbound)
	for i := range summaries {
		summaries[i].IsOnline = r.Presence.IsOnline(p.Context, summaries[i].ID)
	}
	return summaries, nil
}

func (r *Resolver) createMessage(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	senderID, err := primitiveID(inputString(in, "sender"))
	if err != nil {
		return nil, err
	}
	receiverID, err := primitiveID(inputString(in, "receiver"))
	if err != nil {
		return nil, err
	}
	if senderID.Hex() != claims.UserID {
		return nil, ErrUnauthenticated
	}

	msg := &models.Message{
		Sender:   senderID,
		Receiver: receiverID,
		Message:  inputString(in, "message"),
	}

	if upload := inputUpload(in, "image"); upload != nil {
		file, err := upload.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()

		ref, err := r.Media.Store(p.Context, file, mediaBucket, upload.ContentType())
		if err != nil {
			return nil, err
		}
		msg.ImageMessage = ref.URL
		msg.ImagePublicID = ref.PublicID()
	}

	if err := r.Messages.Create(p.Context, msg); err != nil {
		if msg.ImagePublicID != "" {
			r.removeMedia(p.Context, msg.ImagePublicID)
		}
		return nil, err
	}

	// Register the partners on each other's adjacency lists. The write is
	// a no-op when the partner is already present, so retries and
	// concurrent sends never duplicate entries.
	opened, err := r.Users.AddConversationPartner(p.Context, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if _, err := r.Users.AddConversationPartner(p.Context, receiverID, senderID); err != nil {
		return nil, err
	}
	msg.IsFirstMessage = opened

	r.Broker.Publish(events.TopicMessageCreated, events.MessageCreated{Message: *msg})

	if opened {
		sender, err := r.Users.GetByID(p.Context, senderID.Hex())
		if err != nil {
			r.Log.Warn("failed to load sender for new conversation event",
				zap.String("senderId", senderID.Hex()), zap.Error(err))
		} else {
			summary := conversations.FromMessage(sender, msg, false)
			summary.IsOnline = r.Presence.IsOnline(p.Context, summary.ID)
			r.Broker.Publish(events.TopicNewConversation, events.NewConversation{
				ReceiverID:   receiverID.Hex(),
				Conversation: summary,
			})
		}
	}
	return msg, nil
}

// updateMessageSeen marks every message from sender to receiver as seen.
func (r *Resolver) updateMessageSeen(p graphql.ResolveParams) (interface{}, error) {
	claims, err := authClaims(p.Context)
	if err != nil {
		return nil, err
	}

	in := inputArg(p)
	senderID, err := primitiveID(inputString(in, "sender"))
	if err != nil {
		return nil, err
	}
	receiverID, err := primitiveID(inputString(in, "receiver"))
	if err != nil {
		return nil, err
	}
	// Only the receiver marks a conversation read.
	if receiverID.Hex() != claims.UserID {
		return nil, ErrUnauthenticated
	}

	// The count of newly-seen messages is irrelevant to the caller: marking
	// an already-read conversation succeeds too.
	if _, err := r.Messages.MarkSeen(p.Context, senderID, receiverID); err != nil {
		return nil, err
	}
	return true, nil
}
