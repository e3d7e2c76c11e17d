// SPDX-License-Identifier: MIT

// Package iterative - iteration bookkeeping and listener notification.
//
// A solve fires, in order:
//
//	InitializationPerformed, {IterationStarted, IterationPerformed}*, TerminationPerformed
//
// TerminationPerformed fires only on convergence. Listeners run inline, in
// registration order, on the solving goroutine.

package iterative

import (
	"fmt"

	"github.com/katalvlaran/linsolve/matrix"
)

// Event is a snapshot handle on the solver state. Vectors are read-only live
// views: SetVec fails with matrix.ErrReadOnly and values reflect later
// iterations, so listeners must copy what they keep.
type Event struct {
	// Iterations is the manager's count when the event fired; 0 for
	// initialization.
	Iterations int
	// X is the current estimate of the solution.
	X matrix.Vector
	// B is the right-hand side.
	B matrix.Vector
	// R is the current residual b - A·x; nil for solvers that do not form it.
	R matrix.Vector
	// NormOfResidual is ‖R‖, or an estimate of it when R is nil.
	NormOfResidual float64
}

// ProvidesResidual reports whether R is available.
func (e Event) ProvidesResidual() bool { return e.R != nil }

// Listener observes a solve. Implementations are compared by identity when
// removed, so register pointers.
type Listener interface {
	InitializationPerformed(e Event)
	IterationStarted(e Event)
	IterationPerformed(e Event)
	TerminationPerformed(e Event)
}

// ListenerFuncs adapts optional callbacks to Listener; nil hooks are skipped.
type ListenerFuncs struct {
	OnInitialization func(Event)
	OnIterationStart func(Event)
	OnIteration      func(Event)
	OnTermination    func(Event)
}

var _ Listener = (*ListenerFuncs)(nil)

func (l *ListenerFuncs) InitializationPerformed(e Event) {
	if l.OnInitialization != nil {
		l.OnInitialization(e)
	}
}

func (l *ListenerFuncs) IterationStarted(e Event) {
	if l.OnIterationStart != nil {
		l.OnIterationStart(e)
	}
}

func (l *ListenerFuncs) IterationPerformed(e Event) {
	if l.OnIteration != nil {
		l.OnIteration(e)
	}
}

func (l *ListenerFuncs) TerminationPerformed(e Event) {
	if l.OnTermination != nil {
		l.OnTermination(e)
	}
}

// IterationManager counts iterations against a budget and dispatches events
// to its listeners.
type IterationManager struct {
	max       int
	count     int
	listeners []Listener
}

// NewIterationManager returns a manager allowing maxIterations increments.
func NewIterationManager(maxIterations int) *IterationManager {
	return &IterationManager{max: maxIterations}
}

// AddListener appends l; it is notified after the listeners already present.
func (m *IterationManager) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// RemoveListener drops the first listener identical to l and reports
// whether one was found.
func (m *IterationManager) RemoveListener(l Listener) bool {
	for i, have := range m.listeners {
		if have == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return true
		}
	}

	return false
}

// Iterations returns the current count.
func (m *IterationManager) Iterations() int { return m.count }

// MaxIterations returns the budget.
func (m *IterationManager) MaxIterations() int { return m.max }

// IncrementIterationCount advances the count. Past the budget the count
// stays put and ErrMaxCountExceeded is returned.
func (m *IterationManager) IncrementIterationCount() error {
	if m.count >= m.max {
		return fmt.Errorf("%d iterations: %w", m.max, ErrMaxCountExceeded)
	}
	m.count++

	return nil
}

// ResetIterationCount sets the count back to 0.
func (m *IterationManager) ResetIterationCount() { m.count = 0 }

func (m *IterationManager) FireInitializationPerformed(e Event) {
	for _, l := range m.listeners {
		l.InitializationPerformed(e)
	}
}

func (m *IterationManager) FireIterationStarted(e Event) {
	for _, l := range m.listeners {
		l.IterationStarted(e)
	}
}

func (m *IterationManager) FireIterationPerformed(e Event) {
	for _, l := range m.listeners {
		l.IterationPerformed(e)
	}
}

func (m *IterationManager) FireTerminationPerformed(e Event) {
	for _, l := range m.listeners {
		l.TerminationPerformed(e)
	}
}
