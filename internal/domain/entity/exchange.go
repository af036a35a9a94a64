package entity

import "time"

// Exchange status lifecycle: pending -> accepted -> completed, or
// pending -> rejected. Rejected and completed are terminal; the only
// exception is the account-deletion cascade, which force-rejects any
// non-terminal exchange.
const (
	ExchangeStatusPending   = "pending"
	ExchangeStatusAccepted  = "accepted"
	ExchangeStatusRejected  = "rejected"
	ExchangeStatusCompleted = "completed"
)

const (
	OfferTypeExchange = "exchange"
	OfferTypeChat     = "chat"
)

// RejectionReasonUserDeleted marks exchanges force-rejected by the
// account-deletion cascade.
const RejectionReasonUserDeleted = "user_deleted"

// Offer is the proposal attached to an exchange at creation. The variant is
// selected by Type: "exchange" carries the offered product fields, "chat"
// must not.
type Offer struct {
	Type               string `json:"type" firestore:"type"`
	OfferedProductID   string `json:"offered_product_id,omitempty" firestore:"offeredProductId,omitempty"`
	OfferedProductName string `json:"offered_product_name,omitempty" firestore:"offeredProductName,omitempty"`
	Message            string `json:"message,omitempty" firestore:"message,omitempty"`
}

// Review is embedded in Exchange.Reviews keyed by reviewer ID, so each
// reviewer can hold at most one review per exchange. ReviewedUserID is
// denormalized so the aggregator can attribute a review without a join.
type Review struct {
	Rating         int       `json:"rating" firestore:"rating"`
	Comment        string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	ReviewerID     string    `json:"reviewer_id" firestore:"reviewerId"`
	ReviewedUserID string    `json:"reviewed_user_id" firestore:"reviewedUserId"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

type Exchange struct {
	ID              string            `json:"id" firestore:"id"`
	ProductID       string            `json:"product_id" firestore:"productId"`
	ProductName     string            `json:"product_name" firestore:"productName"`
	RequesterID     string            `json:"requester_id" firestore:"requesterId"`
	OwnerID         string            `json:"owner_id" firestore:"ownerId"`
	Status          string            `json:"status" firestore:"status"`
	ChatID          string            `json:"chat_id" firestore:"chatId"`
	Offer           Offer             `json:"offer" firestore:"offer"`
	RejectionReason string            `json:"rejection_reason,omitempty" firestore:"rejectionReason,omitempty"`
	Reviews         map[string]Review `json:"reviews,omitempty" firestore:"reviews,omitempty"`
	CreatedAt       time.Time         `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time         `json:"updated_at" firestore:"updatedAt"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}

// Counterparty returns the other party of the exchange, or "" when userID is
// not a party at all.
func (e *Exchange) Counterparty(userID string) string {
	switch userID {
	case e.RequesterID:
		return e.OwnerID
	case e.OwnerID:
		return e.RequesterID
	}
	return ""
}

// IsParty reports whether userID is the requester or the owner.
func (e *Exchange) IsParty(userID string) bool {
	return userID == e.RequesterID || userID == e.OwnerID
}

// IsTerminal reports whether the exchange reached a final status.
func (e *Exchange) IsTerminal() bool {
	return e.Status == ExchangeStatusRejected || e.Status == ExchangeStatusCompleted
}
