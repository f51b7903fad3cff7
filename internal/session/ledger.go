package session

import "sync"

// Ledger is the in-memory question -> selected option mapping for an active
// session. Selecting a new option overwrites the previous one; nothing is
// ever appended. It performs no validation of the option against the
// question's declared options.
type Ledger struct {
	mu         sync.RWMutex
	selections map[uint]string
}

func NewLedger() *Ledger {
	return &Ledger{selections: make(map[uint]string)}
}

// Select records option as the answer for questionID, replacing any
// previous selection.
func (l *Ledger) Select(questionID uint, option string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selections[questionID] = option
}

// Get returns the current selection for questionID, if any.
func (l *Ledger) Get(questionID uint) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	option, ok := l.selections[questionID]
	return option, ok
}

// AnsweredCount returns the number of distinct questions with a selection.
func (l *Ledger) AnsweredCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.selections)
}

// Snapshot returns a copy of the selections, safe to use after the session
// keeps mutating the ledger.
func (l *Ledger) Snapshot() map[uint]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snapshot := make(map[uint]string, len(l.selections))
	for id, option := range l.selections {
		snapshot[id] = option
	}
	return snapshot
}
