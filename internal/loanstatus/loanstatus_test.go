// ABOUTME: Tests for loan status derivation
// ABOUTME: Covers future, due-today, and overdue due dates

package loanstatus

import (
	"testing"
	"time"
)

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestComputeFutureDueDate(t *testing.T) {
	s := Compute(base.Add(72*time.Hour), base)

	if s.DaysRemaining != 3 {
		t.Errorf("expected 3 days remaining, got %d", s.DaysRemaining)
	}
	if s.Overdue {
		t.Error("expected not overdue for future due date")
	}
	if s.LateFee != 0 {
		t.Errorf("expected zero fee, got %.2f", s.LateFee)
	}
}

func TestComputePartialDayRoundsUp(t *testing.T) {
	// ceil(6h/24h) = 1: any future fraction of a day counts as one day
	s := Compute(base.Add(6*time.Hour), base)

	if s.DaysRemaining != 1 {
		t.Errorf("expected 1 day remaining, got %d", s.DaysRemaining)
	}
	if s.Overdue {
		t.Error("expected not overdue")
	}
}

func TestComputeDueExactlyNow(t *testing.T) {
	s := Compute(base, base)

	if s.DaysRemaining != 0 {
		t.Errorf("expected 0 days remaining, got %d", s.DaysRemaining)
	}
	if s.Overdue {
		t.Error("due today must not be overdue")
	}
	if s.LateFee != 0 {
		t.Errorf("due today must carry no fee, got %.2f", s.LateFee)
	}
}

func TestComputeEarlierTodayIsDueToday(t *testing.T) {
	// Overdue by less than a day: ceil(-6h/24h) = 0, still "due today".
	s := Compute(base.Add(-6*time.Hour), base)

	if s.DaysRemaining != 0 {
		t.Errorf("expected 0 days remaining, got %d", s.DaysRemaining)
	}
	if s.Overdue {
		t.Error("less than one full day late must not be overdue")
	}
	if s.LateFee != 0 {
		t.Errorf("expected zero fee, got %.2f", s.LateFee)
	}
}

func TestComputeOverdue(t *testing.T) {
	for _, days := range []int{1, 2, 7, 30} {
		s := Compute(base.Add(-time.Duration(days)*24*time.Hour), base)

		if s.DaysRemaining != -days {
			t.Errorf("%d days late: expected %d days remaining, got %d", days, -days, s.DaysRemaining)
		}
		if !s.Overdue {
			t.Errorf("%d days late: expected overdue", days)
		}
		want := float64(days) * DailyFee
		if s.LateFee != want {
			t.Errorf("%d days late: expected fee %.2f, got %.2f", days, want, s.LateFee)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Compute(base.Add(48*time.Hour), base).Label(); got != "em dia" {
		t.Errorf("expected em dia, got %s", got)
	}
	if got := Compute(base, base).Label(); got != "vence hoje" {
		t.Errorf("expected vence hoje, got %s", got)
	}
	if got := Compute(base.Add(-48*time.Hour), base).Label(); got != "atrasado" {
		t.Errorf("expected atrasado, got %s", got)
	}
}
