package service

import "sync/atomic"

// AdmissionGate grants at most one concurrent pipeline run. It is an
// exclusion lock, not a counting pool: acquisition is a single atomic
// compare-and-swap, so there is no window between checking and taking
// the slot.
type AdmissionGate struct {
	held atomic.Bool
}

// NewAdmissionGate creates a released gate.
func NewAdmissionGate() *AdmissionGate {
	return &AdmissionGate{}
}

// TryAcquire takes the slot if it is free. It never blocks and never
// queues: a false return means the caller must be rejected outright.
func (g *AdmissionGate) TryAcquire() bool {
	return g.held.CompareAndSwap(false, true)
}

// Release frees the slot. Callers must pair it with exactly one
// successful TryAcquire, normally via defer.
func (g *AdmissionGate) Release() {
	g.held.Store(false)
}
