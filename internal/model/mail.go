package model

import "context"

// Mail is an outbound message.
type Mail struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Mailer delivers outbound messages.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}
