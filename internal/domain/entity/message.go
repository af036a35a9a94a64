package entity

import "time"

// Message is append-only; there is no edit or delete. IsOfferMessage marks
// the seed message copied from the initial offer, which must not trigger a
// duplicate notification on top of the NEW_OFFER one.
type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ChatID         string    `json:"chat_id" firestore:"chatId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	Text           string    `json:"text" firestore:"text"`
	IsOfferMessage bool      `json:"is_offer_message,omitempty" firestore:"isOfferMessage,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
