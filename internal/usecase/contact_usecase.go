package usecase

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"sproutswap/pkg/errors"
)

type ContactUseCase struct {
	mailer    Mailer
	recipient string
}

func NewContactUseCase(mailer Mailer, recipient string) *ContactUseCase {
	return &ContactUseCase{
		mailer:    mailer,
		recipient: recipient,
	}
}

type ContactFormInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	maxNameLen    = 100
	maxEmailLen   = 254
	maxSubjectLen = 200
	maxMessageLen = 5000
)

// Submit validates the contact form and forwards it by mail. Validation runs
// before any side effect; all user-supplied values are HTML-escaped before
// interpolation.
func (uc *ContactUseCase) Submit(input ContactFormInput) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)

	switch {
	case name == "" || email == "" || subject == "" || message == "":
		return errors.BadRequest("All contact form fields are required", nil)
	case len(name) > maxNameLen:
		return errors.BadRequest(fmt.Sprintf("Name must be at most %d characters", maxNameLen), nil)
	case len(email) > maxEmailLen || !emailPattern.MatchString(email):
		return errors.BadRequest("Invalid email address", nil)
	case len(subject) > maxSubjectLen:
		return errors.BadRequest(fmt.Sprintf("Subject must be at most %d characters", maxSubjectLen), nil)
	case len(message) > maxMessageLen:
		return errors.BadRequest(fmt.Sprintf("Message must be at most %d characters", maxMessageLen), nil)
	}

	body := fmt.Sprintf("<p>New contact form submission</p><p><strong>Name:</strong> %s<br><strong>Email:</strong> %s<br><strong>Subject:</strong> %s</p><p>%s</p>",
		html.EscapeString(name),
		html.EscapeString(email),
		html.EscapeString(subject),
		html.EscapeString(message))

	// Reply-To points at the submitter so support can answer directly.
	if err := uc.mailer.Send(uc.recipient, fmt.Sprintf("[Contact] %s", html.EscapeString(subject)), body, email); err != nil {
		return errors.Internal("Failed to send contact message", err)
	}

	return nil
}
