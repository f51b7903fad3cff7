package session

import "testing"

func TestLedger_SelectOverwrites(t *testing.T) {
	ledger := NewLedger()

	ledger.Select(1, "Paris")
	ledger.Select(1, "London")

	got, ok := ledger.Get(1)
	if !ok {
		t.Fatal("expected a selection for question 1")
	}
	if got != "London" {
		t.Errorf("Get(1) = %q, want %q (last selection wins)", got, "London")
	}
	if ledger.AnsweredCount() != 1 {
		t.Errorf("AnsweredCount() = %d, want 1 (re-selection must not append)", ledger.AnsweredCount())
	}
}

func TestLedger_GetUnanswered(t *testing.T) {
	ledger := NewLedger()
	if _, ok := ledger.Get(42); ok {
		t.Error("expected no selection for an unanswered question")
	}
	if ledger.AnsweredCount() != 0 {
		t.Errorf("AnsweredCount() = %d, want 0", ledger.AnsweredCount())
	}
}

func TestLedger_SnapshotIsIsolated(t *testing.T) {
	ledger := NewLedger()
	ledger.Select(1, "A")

	snapshot := ledger.Snapshot()
	ledger.Select(1, "B")
	ledger.Select(2, "C")

	if snapshot[1] != "A" {
		t.Errorf("snapshot[1] = %q, want %q (mutations after Snapshot must not leak)", snapshot[1], "A")
	}
	if len(snapshot) != 1 {
		t.Errorf("len(snapshot) = %d, want 1", len(snapshot))
	}
}
