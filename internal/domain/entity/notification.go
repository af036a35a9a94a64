package entity

import "time"

const (
	NotificationNewOffer          = "NEW_OFFER"
	NotificationOfferAccepted     = "OFFER_ACCEPTED"
	NotificationOfferRejected     = "OFFER_REJECTED"
	NotificationMessageReceived   = "MESSAGE_RECEIVED"
	NotificationExchangeCompleted = "EXCHANGE_COMPLETED"
)

// Notification is written by the core on every exchange transition and chat
// message; the recipient's client only ever toggles IsRead or bulk-clears.
type Notification struct {
	ID          string                 `json:"id" firestore:"id"`
	RecipientID string                 `json:"recipient_id" firestore:"recipientId"`
	SenderID    string                 `json:"sender_id" firestore:"senderId"`
	Type        string                 `json:"type" firestore:"type"`
	EntityID    string                 `json:"entity_id" firestore:"entityId"`
	IsRead      bool                   `json:"is_read" firestore:"isRead"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at" firestore:"createdAt"`
}
