// Package invalidation propagates cache evictions between service
// instances. A write on one instance publishes an event to a shared
// channel; every instance runs a subscriber that evicts the corresponding
// key from its own cache store handle. Delivery is best-effort with no
// durable queue: a subscriber that was down during a write misses the
// event and relies on TTL expiry instead.
package invalidation

import (
	"fmt"
	"strings"
)

// Event identifies an entity whose cached value is no longer valid.
// It travels as a single delimited text message, no schema versioning.
type Event struct {
	EntityType string
	EntityID   string
}

// Encode renders the wire form "{entityType}:{entityId}".
func (e Event) Encode() string {
	return e.EntityType + ":" + e.EntityID
}

// ParseEvent decodes a wire payload. The entity id may itself contain
// delimiters, so only the first one splits.
func ParseEvent(payload string) (Event, error) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Event{}, fmt.Errorf("malformed invalidation payload %q", payload)
	}
	return Event{EntityType: parts[0], EntityID: parts[1]}, nil
}
