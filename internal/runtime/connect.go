package runtime

import (
	"fmt"
	"time"

	"github.com/aretw0/pictograph/pkg/domain"
)

// ConnectInput wires producer into the key terminal of consumer.
// Every check runs before any mutation, so a failed call leaves the graph unchanged.
// When the consumer has auto-process enabled it is processed right away.
func (g *Graph) ConnectInput(consumer domain.NodeID, key string, producer domain.NodeID) error {
	c, err := g.lookup(consumer)
	if err != nil {
		return err
	}
	p, err := g.lookup(producer)
	if err != nil {
		return err
	}
	if !c.declares(key) {
		return fmt.Errorf("%w: %q is not an input of %s (%s)", domain.ErrInvalidTerminal, key, consumer, c.spec.Name)
	}
	if current := c.inputs[key]; current != 0 {
		return fmt.Errorf("%w: %s input %q is fed by %s", domain.ErrTerminalOccupied, consumer, key, current)
	}
	if !p.spec.HasOutput {
		return fmt.Errorf("%w: %s (%s) has no output", domain.ErrUnsupportedOperation, producer, p.spec.Name)
	}
	if g.reaches(consumer, producer) {
		return fmt.Errorf("%w: %s already depends on %s", domain.ErrCycle, producer, consumer)
	}

	c.inputs[key] = producer
	p.addOutput(consumer)

	g.logger.Debug("input connected", "node_id", consumer, "key", key, "producer", producer)
	if g.hooks.OnConnect != nil {
		g.hooks.OnConnect(g.linkEvent(domain.EventLinkConnected, producer, consumer, key))
	}

	if c.autoProcess {
		return g.process(c)
	}
	return nil
}

// DisconnectInput clears the key terminal of consumer and invalidates it.
// The consumer leaves the producer's outputs only when no other input of the
// consumer is still fed by that producer.
func (g *Graph) DisconnectInput(consumer domain.NodeID, key string) error {
	c, err := g.lookup(consumer)
	if err != nil {
		return err
	}
	if !c.declares(key) {
		return fmt.Errorf("%w: %q is not an input of %s (%s)", domain.ErrInvalidTerminal, key, consumer, c.spec.Name)
	}

	producer := c.inputs[key]
	c.inputs[key] = 0
	delete(c.bound, key)

	if producer != 0 {
		if p, ok := g.nodes[producer]; ok && !c.feeds(producer) {
			p.removeOutput(consumer)
		}
		g.logger.Debug("input disconnected", "node_id", consumer, "key", key, "producer", producer)
		if g.hooks.OnDisconnect != nil {
			g.hooks.OnDisconnect(g.linkEvent(domain.EventLinkRemoved, producer, consumer, key))
		}
	}

	g.invalidate(c)
	return nil
}

// ConnectOutput registers consumer as a dependent of producer.
// It is bookkeeping only; ConnectInput calls it implicitly. Like ConnectInput
// it refuses links that would close a cycle, self-loops included.
func (g *Graph) ConnectOutput(producer, consumer domain.NodeID) error {
	p, err := g.lookup(producer)
	if err != nil {
		return err
	}
	if _, err := g.lookup(consumer); err != nil {
		return err
	}
	if !p.spec.HasOutput {
		return fmt.Errorf("%w: cannot connect the output of %s (%s)", domain.ErrUnsupportedOperation, producer, p.spec.Name)
	}
	if g.reaches(consumer, producer) {
		return fmt.Errorf("%w: %s already depends on %s", domain.ErrCycle, producer, consumer)
	}
	p.addOutput(consumer)
	return nil
}

// DisconnectOutput removes consumer from producer's dependents, if present.
func (g *Graph) DisconnectOutput(producer, consumer domain.NodeID) error {
	p, err := g.lookup(producer)
	if err != nil {
		return err
	}
	p.removeOutput(consumer)
	return nil
}

// reaches reports whether to is reachable from from by following outputs.
// Connecting producer into consumer closes a cycle iff producer is reachable
// from consumer.
func (g *Graph) reaches(from, to domain.NodeID) bool {
	if from == to {
		return true
	}
	seen := map[domain.NodeID]bool{from: true}
	stack := []domain.NodeID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := g.nodes[id]
		if !ok {
			continue
		}
		for _, next := range n.outputs {
			if next == to {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

func (g *Graph) linkEvent(t domain.EventType, producer, consumer domain.NodeID, key string) *domain.LinkEvent {
	return &domain.LinkEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: t},
		Producer:  producer,
		Consumer:  consumer,
		Key:       key,
	}
}
