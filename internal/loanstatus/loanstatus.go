// ABOUTME: Derives display status for a loan from its due date
// ABOUTME: Computes days remaining, overdue flag, and late-fee preview

package loanstatus

import (
	"math"
	"time"
)

// DailyFee is the fine charged per day past the due date, in currency units.
const DailyFee = 1.0

// Status is the derived display state of a loan.
type Status struct {
	DaysRemaining int
	Overdue       bool
	LateFee       float64
}

// Compute derives the loan status from a due date and the current time.
// Timestamps are compared at full precision and the difference is
// ceiling-rounded to whole days, so a loan due later today counts as
// zero days remaining ("due today") rather than overdue.
func Compute(due, now time.Time) Status {
	days := int(math.Ceil(due.Sub(now).Hours() / 24))

	s := Status{DaysRemaining: days}
	if days < 0 {
		s.Overdue = true
		s.LateFee = float64(-days) * DailyFee
	}
	return s
}

// Label returns a short human-readable description of the status.
func (s Status) Label() string {
	switch {
	case s.Overdue:
		return "atrasado"
	case s.DaysRemaining == 0:
		return "vence hoje"
	default:
		return "em dia"
	}
}
