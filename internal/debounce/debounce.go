// Package debounce coalesces bursts of edits into a single deferred
// callback. Every edit advances a token; a scheduled callback fires only if
// the token it captured is still the current one when its timer expires.
package debounce

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when no delay is configured.
const DefaultDelay = 500 * time.Millisecond

// Token identifies the most recent edit. Tokens only ever increase.
type Token uint64

// Scheduler is a last-write-wins delayed-task scheduler. There is no work
// queue: superseded callbacks wake up, see a newer token and do nothing.
type Scheduler struct {
	delay time.Duration
	fire  func(Token)

	mu      sync.Mutex
	current Token
	pending map[Token]*time.Timer
	stopped bool
}

// New creates a scheduler that calls fire with the captured token once
// delay has elapsed without a newer Touch or Reset.
func New(delay time.Duration, fire func(Token)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}

	return &Scheduler{
		delay:   delay,
		fire:    fire,
		pending: make(map[Token]*time.Timer),
	}
}

// Delay returns the configured quiet period.
func (s *Scheduler) Delay() time.Duration { return s.delay }

// Touch records a new edit and schedules a callback for it. It returns the
// token the callback captured.
func (s *Scheduler) Touch() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current++
	tok := s.current

	if s.stopped {
		return tok
	}

	s.pending[tok] = time.AfterFunc(s.delay, func() { s.expire(tok) })

	return tok
}

// Reset advances the token without scheduling anything. Callbacks captured
// before the reset can no longer fire.
func (s *Scheduler) Reset() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current++

	return s.current
}

// Current returns the most recent token.
func (s *Scheduler) Current() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Stop prevents any further callbacks and releases pending timers.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true

	for tok, t := range s.pending {
		t.Stop()
		delete(s.pending, tok)
	}
}

func (s *Scheduler) expire(tok Token) {
	s.mu.Lock()
	delete(s.pending, tok)
	live := !s.stopped && tok == s.current
	s.mu.Unlock()

	if !live {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("debounce callback panicked", slog.Any("error", r))
		}
	}()

	s.fire(tok)
}
