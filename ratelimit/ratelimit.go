// Package ratelimit provides a sliding window rate limiter keyed by nick.
// The bot uses it to drop commands from anyone hammering it: every menu
// command triggers live page fetches, so an unthrottled nick could keep
// the bot busy scraping indefinitely.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks command timestamps per nick within a sliding window.
type Limiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New creates a limiter allowing limit events per nick per window.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records an event for nick and reports whether it is within the
// limit. A denied event is not recorded, so a nick that keeps trying is
// allowed again as soon as its old events age out.
func (l *Limiter) Allow(nick string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	fresh := l.prune(nick, now)

	if len(fresh) >= l.limit {
		return false
	}
	l.seen[nick] = append(fresh, now)
	return true
}

// Remaining returns how many events the nick has left in the current
// window.
func (l *Limiter) Remaining(nick string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.limit - len(l.prune(nick, l.now()))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// prune drops aged-out events for nick, updates the map and returns what
// is left. Empty nicks are removed entirely so the map cannot grow without
// bound on a busy channel. Must be called with mu held.
func (l *Limiter) prune(nick string, now time.Time) []time.Time {
	windowStart := now.Add(-l.window)
	fresh := l.seen[nick][:0]
	for _, t := range l.seen[nick] {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		delete(l.seen, nick)
		return nil
	}
	l.seen[nick] = fresh
	return fresh
}
