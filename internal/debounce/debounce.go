// Package debounce publishes a value only after it has stopped changing
// for a fixed delay (trailing edge).
package debounce

import (
	"sync"
	"time"
)

type Value[T comparable] struct {
	mu         sync.Mutex
	delay      time.Duration
	current    T
	pending    T
	generation uint64
	timer      *time.Timer
	onSettle   func(T)
}

// New returns a Value whose Get reports initial until a later Set settles.
// onSettle may be nil. It runs outside the lock, once per settled change.
func New[T comparable](initial T, delay time.Duration, onSettle func(T)) *Value[T] {
	return &Value[T]{
		delay:    delay,
		current:  initial,
		pending:  initial,
		onSettle: onSettle,
	}
}

func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.timer != nil {
		v.timer.Stop()
	}
	v.pending = value
	v.generation++
	generation := v.generation
	v.timer = time.AfterFunc(v.delay, func() {
		v.settle(generation)
	})
}

func (v *Value[T]) settle(generation uint64) {
	v.mu.Lock()
	// a newer Set re-armed the timer after this one fired
	if generation != v.generation {
		v.mu.Unlock()
		return
	}
	v.timer = nil
	changed := v.current != v.pending
	v.current = v.pending
	value := v.current
	onSettle := v.onSettle
	v.mu.Unlock()

	if changed && onSettle != nil {
		onSettle(value)
	}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Stop drops a pending value without publishing it.
func (v *Value[T]) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.generation++
	v.pending = v.current
}
