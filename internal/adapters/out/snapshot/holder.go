package snapshot

import (
	"sync/atomic"

	"pricing/internal/core/ports"
)

var _ ports.SnapshotPublisher = (*Holder)(nil)

// Holder publishes the current snapshot. Replace swaps it atomically; readers
// that already took a snapshot keep using it until they finish.
type Holder struct {
	current atomic.Pointer[published]
}

type published struct {
	snap ports.Snapshot
}

// NewHolder creates a Holder serving initial.
func NewHolder(initial ports.Snapshot) *Holder {
	h := &Holder{}
	h.current.Store(&published{snap: initial})
	return h
}

// Current returns the published snapshot.
func (h *Holder) Current() ports.Snapshot {
	return h.current.Load().snap
}

// Replace publishes next and reports whether the version changed.
func (h *Holder) Replace(next ports.Snapshot) bool {
	prev := h.current.Swap(&published{snap: next})
	return prev.snap == nil || prev.snap.Version() != next.Version()
}

// Version returns the version of the published snapshot.
func (h *Holder) Version() string {
	return h.current.Load().snap.Version()
}
