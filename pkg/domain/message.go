package domain

// Message is a notification a producer sends to every consumer of its output.
type Message int

const (
	// MessageBecameValid tells consumers a fresh value is available.
	MessageBecameValid Message = iota
	// MessageBecameInvalid tells consumers the cached value is stale.
	MessageBecameInvalid
)

func (m Message) String() string {
	switch m {
	case MessageBecameValid:
		return "became_valid"
	case MessageBecameInvalid:
		return "became_invalid"
	default:
		return "unknown"
	}
}
