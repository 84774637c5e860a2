package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From overrides the configured sender when set.
	From string
	// To lists the recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body, used when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer

	// Send dispatches the message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
