package controller

import "time"

// Loop serialises work posted by background completions. Post must not run
// fn while the caller holds controller state; the controller never calls
// Post with its own lock held.
type Loop interface {
	Post(fn func())
}

// LoopFunc adapts a function into a Loop.
type LoopFunc func(fn func())

// Post calls the underlying function.
func (f LoopFunc) Post(fn func()) {
	f(fn)
}

// Inline runs posted work immediately on the posting goroutine.
var Inline Loop = LoopFunc(func(fn func()) { fn() })

// ChanLoop queues posted work on a channel for a UI loop to run.
type ChanLoop struct {
	ch chan func()
}

// NewChanLoop constructs a ChanLoop with the given buffer size.
func NewChanLoop(buffer int) *ChanLoop {
	if buffer < 0 {
		buffer = 0
	}
	return &ChanLoop{ch: make(chan func(), buffer)}
}

// Post enqueues fn, blocking while the buffer is full.
func (l *ChanLoop) Post(fn func()) {
	l.ch <- fn
}

// C exposes the queue to the owning event loop.
func (l *ChanLoop) C() <-chan func() {
	return l.ch
}

// Drain runs every queued function without blocking and returns the count.
func (l *ChanLoop) Drain() int {
	ran := 0
	for {
		select {
		case fn := <-l.ch:
			fn()
			ran++
		default:
			return ran
		}
	}
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// RealClock schedules callbacks with time.AfterFunc.
var RealClock Clock = realClock{}
