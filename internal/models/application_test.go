package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseApplicationStatus(t *testing.T) {
	for _, s := range ApplicationStatuses {
		got, err := ParseApplicationStatus(" " + string(s) + " ")
		if err != nil || got != s {
			t.Errorf("ParseApplicationStatus(%q) = %q, %v", s, got, err)
		}
	}
	for _, raw := range []string{"", "approved", "interview", "pending!", "ACCEPTED", "Pending"} {
		if _, err := ParseApplicationStatus(raw); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseApplicationStatus(%q) err = %v, want ErrUnknownStatus", raw, err)
		}
	}
}

func TestTransitionTable(t *testing.T) {
	allowed := map[ApplicationStatus]map[ApplicationStatus]bool{
		StatusPending:     {StatusReviewed: true, StatusShortlisted: true, StatusRejected: true, StatusAccepted: true, StatusWithdrawn: true},
		StatusReviewed:    {StatusShortlisted: true, StatusRejected: true, StatusAccepted: true, StatusWithdrawn: true},
		StatusShortlisted: {StatusRejected: true, StatusAccepted: true, StatusWithdrawn: true},
	}
	for _, from := range ApplicationStatuses {
		for _, to := range ApplicationStatuses {
			err := from.Transition(to)
			if allowed[from][to] && err != nil {
				t.Errorf("%s -> %s rejected: %v", from, to, err)
			}
			if !allowed[from][to] && err == nil {
				t.Errorf("%s -> %s accepted", from, to)
			}
		}
	}
}

func TestTerminalStatusesAreClosed(t *testing.T) {
	for _, s := range []ApplicationStatus{StatusRejected, StatusAccepted, StatusWithdrawn} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		if len(s.NextStatuses()) != 0 {
			t.Errorf("%s has outgoing transitions", s)
		}
		for _, to := range ApplicationStatuses {
			if err := s.Transition(to); !errors.Is(err, ErrApplicationTerminal) {
				t.Errorf("%s -> %s err = %v, want ErrApplicationTerminal", s, to, err)
			}
		}
	}
}

func TestTransitionUnknownTarget(t *testing.T) {
	if err := StatusPending.Transition("hired"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("err = %v, want ErrUnknownStatus", err)
	}
}

func TestNextStatusesIsACopy(t *testing.T) {
	next := StatusPending.NextStatuses()
	next[0] = StatusAccepted
	if StatusPending.NextStatuses()[0] != StatusReviewed {
		t.Fatal("NextStatuses exposed the transition table")
	}
}

func TestBadgeColor(t *testing.T) {
	tests := map[ApplicationStatus]string{
		StatusPending:     "warning",
		StatusReviewed:    "info",
		StatusShortlisted: "success",
		StatusRejected:    "danger",
		StatusAccepted:    "success",
		StatusWithdrawn:   "secondary",
		"bogus":           "secondary",
	}
	for status, want := range tests {
		if got := status.BadgeColor(); got != want {
			t.Errorf("%q.BadgeColor() = %q, want %q", status, got, want)
		}
	}
}

func TestDaysSinceApplied(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		applied time.Time
		want    int
	}{
		{now, 0},
		{now.Add(-23 * time.Hour), 0},
		{now.Add(-24 * time.Hour), 1},
		{now.Add(-71 * time.Hour), 2},
		{now.Add(time.Hour), 0},
	}
	for _, tt := range tests {
		a := JobApplication{AppliedAt: tt.applied}
		if got := a.DaysSinceApplied(now); got != tt.want {
			t.Errorf("DaysSinceApplied(%v) = %d, want %d", tt.applied, got, tt.want)
		}
	}
}

func TestCanBeWithdrawn(t *testing.T) {
	for _, s := range ApplicationStatuses {
		a := JobApplication{Status: s}
		want := s == StatusPending || s == StatusReviewed || s == StatusShortlisted
		if a.CanBeWithdrawn() != want {
			t.Errorf("status %s CanBeWithdrawn = %v, want %v", s, !want, want)
		}
	}
}
