package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the selected broker cannot perform the
// requested operation, such as delayed delivery on brokers without native
// support for it.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume
// messages. The concrete backend (NSQ, NATS, Kafka) is chosen at startup.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic, subject or queue).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source until the context is canceled.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. A non-nil error leaves the
// ack decision to the consumer configuration.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning; other brokers ignore it.
	Key []byte

	// Headers carry metadata such as the correlation ID.
	Headers []Header

	// Delay defers delivery when the broker supports it.
	Delay time.Duration
}

// Header is a key/value pair attached to a message.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries broker metadata about an accepted message.
type PublishResult struct {
	// Topic is the destination the message was published to.
	Topic string

	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Key returns the partition key, when the broker has one.
	Key() []byte
	// Headers returns message headers.
	Headers() []Header

	// ID returns the broker message ID, when the broker assigns one.
	ID() string
	// Topic returns the topic or subject the message arrived on.
	Topic() string
	// Timestamp returns the broker timestamp.
	Timestamp() time.Time

	// Ack acknowledges successful processing.
	Ack(ctx context.Context) error
}

// Nackable can request redelivery of a message.
type Nackable interface {
	Nack(ctx context.Context) error
}
