// Package ui hosts the roll session in a fyne window.
package ui

import (
	"sync"

	"dicesim/internal/session"

	"fyne.io/fyne/v2"
)

// EventForKey maps a typed key to a session event.
// Only ESC (quit) and SPACE (roll) have an effect.
func EventForKey(name fyne.KeyName) (session.Event, bool) {
	switch name {
	case fyne.KeyEscape:
		return session.EventQuit, true
	case fyne.KeySpace:
		return session.EventRoll, true
	default:
		return 0, false
	}
}

// KeyQueue collects events from the fyne goroutine and hands them to the
// session loop. It implements session.InputSource.
type KeyQueue struct {
	mu      sync.Mutex
	pending []session.Event
}

// NewKeyQueue creates an empty queue.
func NewKeyQueue() *KeyQueue {
	return &KeyQueue{}
}

// Push queues ev.
func (q *KeyQueue) Push(ev session.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, ev)
}

// PushKey queues the event for a typed key and reports whether the key is bound.
func (q *KeyQueue) PushKey(name fyne.KeyName) bool {
	ev, ok := EventForKey(name)
	if ok {
		q.Push(ev)
	}
	return ok
}

// Poll drains the queue without blocking. It returns nil when empty.
func (q *KeyQueue) Poll() []session.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	events := q.pending
	q.pending = nil
	return events
}

// bindKeys routes window input into q: typed keys, and the close button as quit.
func bindKeys(w fyne.Window, q *KeyQueue) {
	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		q.PushKey(key.Name)
	})
	w.SetCloseIntercept(func() {
		q.Push(session.EventQuit)
	})
}
