// Package latency simulates the I/O delay of a remote backend in front of
// the in-memory stores.
//
// Production wiring uses Uniform(200ms, 500ms); tests use None() so store
// calls return immediately. A real network client can later satisfy Hook
// with the same contract.
package latency

import (
	"context"
	"math/rand/v2"
	"time"
)

// Hook is called once at the start of every store operation.
type Hook interface {
	Wait(ctx context.Context)
}

// Func adapts a plain function to Hook.
type Func func(ctx context.Context)

func (f Func) Wait(ctx context.Context) { f(ctx) }

// None returns a Hook that never waits.
func None() Hook { return Func(func(context.Context) {}) }

type uniform struct {
	min, max time.Duration
	sleep    func(time.Duration)
}

// Uniform returns a Hook that sleeps for a random duration in [min, max].
// The wait always runs to completion: store calls are not cancellable.
func Uniform(min, max time.Duration) Hook {
	if max < min {
		min, max = max, min
	}
	return &uniform{min: min, max: max, sleep: time.Sleep}
}

func (u *uniform) Wait(context.Context) {
	u.sleep(u.pick())
}

func (u *uniform) pick() time.Duration {
	span := u.max - u.min
	if span <= 0 {
		return u.min
	}
	return u.min + rand.N(span+1)
}
