package streak

import (
	"testing"
	"time"
)

var base = time.Date(2026, 8, 28, 15, 0, 0, 0, time.Local)

func TestRecord_FirstEver(t *testing.T) {
	tr := New(0, "", base)
	count, first := tr.Record(base)
	if count != 1 || !first {
		t.Fatalf("expected streak 1 on first interaction, got count=%d first=%v", count, first)
	}
}

func TestRecord_ConsecutiveDayIncrements(t *testing.T) {
	yesterday := Day(base.AddDate(0, 0, -1))
	tr := New(4, yesterday, base)
	count, first := tr.Record(base)
	if count != 5 || !first {
		t.Fatalf("expected previous+1=5, got count=%d first=%v", count, first)
	}
	if tr.LastDate() != Day(base) {
		t.Fatalf("last date not advanced")
	}
}

func TestRecord_SameDayIsNoOp(t *testing.T) {
	tr := New(0, "", base)
	tr.Record(base)
	count, first := tr.Record(base.Add(2 * time.Hour))
	if count != 1 || first {
		t.Fatalf("expected no change within one day, got count=%d first=%v", count, first)
	}
}

func TestRecord_GapResetsToOne(t *testing.T) {
	threeDaysAgo := Day(base.AddDate(0, 0, -3))
	tr := New(9, threeDaysAgo, base.AddDate(0, 0, -3))
	count, first := tr.Record(base)
	if count != 1 || !first {
		t.Fatalf("expected reset to 1 after gap, got count=%d first=%v", count, first)
	}
}

func TestNew_EagerResetOnStaleDate(t *testing.T) {
	stale := Day(base.AddDate(0, 0, -5))
	tr := New(12, stale, base)
	if tr.Count() != 0 {
		t.Fatalf("expected eager reset to 0, got %d", tr.Count())
	}
	// the next interaction still starts a fresh streak of 1
	if count, _ := tr.Record(base); count != 1 {
		t.Fatalf("expected streak 1 after stale reload, got %d", count)
	}
}

func TestNew_NoResetForTodayOrYesterday(t *testing.T) {
	tr := New(3, Day(base), base)
	if tr.Count() != 3 {
		t.Fatalf("today's date must not reset, got %d", tr.Count())
	}
	tr = New(3, Day(base.AddDate(0, 0, -1)), base)
	if tr.Count() != 3 {
		t.Fatalf("yesterday's date must not reset, got %d", tr.Count())
	}
}
