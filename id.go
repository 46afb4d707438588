package rsim

import "github.com/google/uuid"

// ComponentID stably identifies a component for the lifetime of a run.
// It is assigned by the embedder at construction time (the kernel never
// mints one itself) and is used both as the dispatcher-ownership key and
// as the termination-registry key.
type ComponentID string

// NewComponentID returns a fresh, globally-unique ComponentID backed by a
// random UUID. It is a convenience for embedders who assemble components
// from independently authored packages and want collision-free identity
// without hand-rolled numbering; components that already have a natural
// stable id (e.g. a position in a fixed topology) are free to use a plain
// string instead.
func NewComponentID() ComponentID {
	return ComponentID(uuid.NewString())
}
