package entity

import "time"

// LastMessage is the denormalized tail of a chat, read by list views so they
// never have to load the messages subcollection.
type LastMessage struct {
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Chat is the 1:1 message thread bound to exactly one exchange. Participants
// are always the two exchange parties, requester first.
type Chat struct {
	ID           string       `json:"id" firestore:"id"`
	ExchangeID   string       `json:"exchange_id,omitempty" firestore:"exchangeId,omitempty"`
	Participants []string     `json:"participants" firestore:"participants"`
	ListingID    string       `json:"listing_id" firestore:"listingId"`
	ListingTitle string       `json:"listing_title" firestore:"listingTitle"`
	LastMessage  *LastMessage `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	CreatedAt    time.Time    `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time    `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether userID takes part in the chat.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID.
func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
