package usecase

import "context"

type FirebaseAuthClient interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	GetUserEmail(ctx context.Context, uid string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}

type FileStorage interface {
	DeleteFile(ctx context.Context, fileURL string) error
}

// Mailer relays an HTML mail. replyTo may be empty; delivery is best effort
// for callers that treat mail as a side channel.
type Mailer interface {
	Send(to, subject, htmlBody, replyTo string) error
}

// EventPusher delivers real-time events to connected users. Delivery is best
// effort; offline users rely on the persisted notification instead.
type EventPusher interface {
	PushToUser(userID, eventType string, payload interface{})
}
