package session

import (
	"testing"
	"time"
)

func TestManager_OneSessionPerUser(t *testing.T) {
	m := NewManager()
	recorder := newSinkRecorder()

	first := New(1, recorder.sink, WithTickInterval(time.Millisecond))
	m.Put(first)
	if err := first.Begin(longTest(), sampleQuestions()); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	second := New(1, recorder.sink, WithTickInterval(time.Millisecond))
	m.Put(second)

	if _, ok := m.Get(first.ID); ok {
		t.Error("starting a new session must evict the user's previous session")
	}
	if _, ok := m.Get(second.ID); !ok {
		t.Error("new session missing from registry")
	}
	// The abandoned session persists nothing.
	if recorder.count() != 0 {
		t.Errorf("abandoned session persisted %d attempts, want 0", recorder.count())
	}
}

func TestManager_CompletedSessionRemovesItself(t *testing.T) {
	m := NewManager()
	recorder := newSinkRecorder()

	s := New(2, recorder.sink, WithTickInterval(time.Millisecond))
	m.Put(s)
	if err := s.Begin(longTest(), sampleQuestions()); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := s.Submit(); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if _, ok := m.Get(s.ID); ok {
		t.Error("completed session should have removed itself from the registry")
	}
}

func TestManager_RemoveUnknownIsNoOp(t *testing.T) {
	m := NewManager()
	m.Remove("nope")

	recorder := newSinkRecorder()
	s := New(3, recorder.sink)
	m.Put(s)
	m.Remove(s.ID)
	if _, ok := m.Get(s.ID); ok {
		t.Error("Remove did not drop the session")
	}
}
