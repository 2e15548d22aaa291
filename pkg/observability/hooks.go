package observability

import (
	"log/slog"

	"github.com/aretw0/pictograph/pkg/domain"
)

// LoggingHooks logs every lifecycle event at Debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnProcess: func(e *domain.NodeEvent) {
			logger.Debug("node_processed", "node_id", e.NodeID, "type", e.NodeType, "depth", e.Depth)
		},
		OnInvalidate: func(e *domain.NodeEvent) {
			logger.Debug("node_invalidated", "node_id", e.NodeID, "type", e.NodeType, "depth", e.Depth)
		},
		OnConnect: func(e *domain.LinkEvent) {
			logger.Debug("link_connected", "producer", e.Producer, "consumer", e.Consumer, "key", e.Key)
		},
		OnDisconnect: func(e *domain.LinkEvent) {
			logger.Debug("link_removed", "producer", e.Producer, "consumer", e.Consumer, "key", e.Key)
		},
	}
}

// Chain combines hooks; each callback runs in argument order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		out.OnProcess = chainNode(out.OnProcess, h.OnProcess)
		out.OnInvalidate = chainNode(out.OnInvalidate, h.OnInvalidate)
		out.OnConnect = chainLink(out.OnConnect, h.OnConnect)
		out.OnDisconnect = chainLink(out.OnDisconnect, h.OnDisconnect)
	}
	return out
}

func chainNode(a, b func(*domain.NodeEvent)) func(*domain.NodeEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *domain.NodeEvent) {
		a(e)
		b(e)
	}
}

func chainLink(a, b func(*domain.LinkEvent)) func(*domain.LinkEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *domain.LinkEvent) {
		a(e)
		b(e)
	}
}
