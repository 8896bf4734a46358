package state

import (
	"testing"
)

func TestManager_DefaultIsNone(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if got := m.GetState(42); got != StateNone {
		t.Fatalf("expected StateNone for unknown user, got %q", got)
	}
}

func TestManager_SetGetClear(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.SetState(42, StateBindingSchoolID)

	if got := m.GetState(42); got != StateBindingSchoolID {
		t.Fatalf("expected StateBindingSchoolID, got %q", got)
	}
	if got := m.GetState(43); got != StateNone {
		t.Fatalf("expected StateNone for another user, got %q", got)
	}

	m.ClearState(42)
	if got := m.GetState(42); got != StateNone {
		t.Fatalf("expected StateNone after clear, got %q", got)
	}
}

func TestManager_SetNoneDropsEntry(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.SetState(42, StateBindingSchoolID)
	m.SetState(42, StateNone)

	if got := m.GetState(42); got != StateNone {
		t.Fatalf("expected StateNone, got %q", got)
	}
}
