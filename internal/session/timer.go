package session

import (
	"sync"
	"time"
)

// Timer is a one-tick-per-second countdown. It signals expiry exactly once
// when the remaining time reaches zero and never goes negative.
type Timer struct {
	interval time.Duration

	mu        sync.Mutex
	remaining int
	running   bool
	stop      chan struct{}
}

// NewTimer creates a countdown ticking once per second.
func NewTimer() *Timer {
	return &Timer{interval: time.Second}
}

// NewTimerWithInterval creates a countdown with a custom tick interval.
// Used by tests to compress time; production code uses NewTimer.
func NewTimerWithInterval(interval time.Duration) *Timer {
	return &Timer{interval: interval}
}

// Start begins counting down from durationSeconds. onTick is invoked after
// every tick with the remaining seconds; onExpire is invoked exactly once
// when the countdown reaches zero. Either callback may be nil. Callbacks run
// on the timer's goroutine.
func (t *Timer) Start(durationSeconds int, onTick func(remaining int), onExpire func()) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.remaining = durationSeconds
	t.running = true
	t.stop = make(chan struct{})
	stop := t.stop
	t.mu.Unlock()

	if durationSeconds <= 0 {
		t.mu.Lock()
		t.remaining = 0
		t.running = false
		t.mu.Unlock()
		if onExpire != nil {
			go onExpire()
		}
		return
	}

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.mu.Lock()
				if !t.running {
					t.mu.Unlock()
					return
				}
				t.remaining--
				remaining := t.remaining
				if remaining <= 0 {
					t.running = false
				}
				t.mu.Unlock()

				if onTick != nil {
					onTick(remaining)
				}
				if remaining <= 0 {
					if onExpire != nil {
						onExpire()
					}
					return
				}
			}
		}
	}()
}

// Cancel stops the countdown with no further signals. Safe to call after
// expiry or repeatedly.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.stop)
}

// Remaining returns the seconds left on the countdown.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}
