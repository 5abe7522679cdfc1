package client

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is one user-visible message raised by the workspace:
// every failed mutating operation produces one, and so does every
// successful one.
type Notification struct {
	Message  string
	Severity Severity
}

// Notifier delivers notifications to a single subscriber over a buffered
// channel. When nobody is draining the channel, the oldest undelivered
// notification is dropped rather than blocking the operation that raised
// it.
type Notifier struct {
	events chan Notification
}

// NewNotifier creates a notifier with the given buffer size; sizes below
// one get a single-slot buffer.
func NewNotifier(buffer int) *Notifier {
	if buffer < 1 {
		buffer = 1
	}
	return &Notifier{events: make(chan Notification, buffer)}
}

// Events is the subscription channel. It is never closed by publishing.
func (n *Notifier) Events() <-chan Notification {
	return n.events
}

// Publish queues a notification for the subscriber.
func (n *Notifier) Publish(message string, severity Severity) {
	note := Notification{Message: message, Severity: severity}
	for {
		select {
		case n.events <- note:
			return
		default:
		}
		select {
		case <-n.events:
		default:
		}
	}
}
