// Package status aggregates runtime counters shared by the render loop and
// the terminal backends. Writers update atomics directly; readers take a
// consistent-enough Snapshot for display.
package status

import (
	"sync/atomic"
	"time"
)

// Registry is the central metrics facade. All methods are safe for
// concurrent use and are no-ops on a nil receiver, so collection is
// disabled by simply not providing a registry.
type Registry struct {
	framesRendered atomic.Int64
	cellsEmitted   atomic.Int64
	bytesWritten   atomic.Int64
	eventsSeen     atomic.Int64
	eventsDropped  atomic.Int64
	lastFrameNanos atomic.Int64
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	FramesRendered int64
	CellsEmitted   int64
	BytesWritten   int64
	EventsSeen     int64
	EventsDropped  int64
	LastFrame      time.Duration
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{}
}

// CountFrame records one completed render pass and its duration
func (r *Registry) CountFrame(d time.Duration) {
	if r == nil {
		return
	}
	r.framesRendered.Add(1)
	r.lastFrameNanos.Store(int64(d))
}

// AddCells records cells emitted to the backend
func (r *Registry) AddCells(n int64) {
	if r == nil {
		return
	}
	r.cellsEmitted.Add(n)
}

// AddBytes records bytes that reached the terminal
func (r *Registry) AddBytes(n int64) {
	if r == nil {
		return
	}
	r.bytesWritten.Add(n)
}

// CountEvent records one parsed input event
func (r *Registry) CountEvent() {
	if r == nil {
		return
	}
	r.eventsSeen.Add(1)
}

// CountDroppedEvent records an event discarded because the channel was full
func (r *Registry) CountDroppedEvent() {
	if r == nil {
		return
	}
	r.eventsDropped.Add(1)
}

// Snapshot returns a copy of the current counter values. Each field is read
// atomically; the set as a whole is not a single atomic observation, which
// is acceptable for display purposes
func (r *Registry) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		FramesRendered: r.framesRendered.Load(),
		CellsEmitted:   r.cellsEmitted.Load(),
		BytesWritten:   r.bytesWritten.Load(),
		EventsSeen:     r.eventsSeen.Load(),
		EventsDropped:  r.eventsDropped.Load(),
		LastFrame:      time.Duration(r.lastFrameNanos.Load()),
	}
}
