package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventNodeProcessed   EventType = "node_processed"
	EventNodeInvalidated EventType = "node_invalidated"
	EventLinkConnected   EventType = "link_connected"
	EventLinkRemoved     EventType = "link_removed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NodeEvent reports a validity transition of a node.
type NodeEvent struct {
	EventBase
	NodeID   NodeID `json:"node_id"`
	NodeType string `json:"node_type"`
	// Depth is the cascade depth at which the event happened (0 = direct call).
	Depth int `json:"depth"`
}

// LinkEvent reports a structural edit.
type LinkEvent struct {
	EventBase
	Producer NodeID `json:"producer"`
	Consumer NodeID `json:"consumer"`
	Key      string `json:"key"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously inside the operation that triggered them.
type LifecycleHooks struct {
	OnProcess    func(*NodeEvent)
	OnInvalidate func(*NodeEvent)
	OnConnect    func(*LinkEvent)
	OnDisconnect func(*LinkEvent)
}
