// ABOUTME: Optimistic list updates after confirmed backend mutations
// ABOUTME: Produces new slices and tracks pending removals across re-fetches

package listops

import "github.com/ufxlib/biblioteca-cli/internal/client"

// CancelReservation returns a new slice with the reservation matching id
// removed. The active list models "canceled" as "no longer shown"; the
// history view reports canceled holds. An absent id is a no-op.
func CancelReservation(list []client.Reservation, id string) []client.Reservation {
	out := make([]client.Reservation, 0, len(list))
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// PayFine returns a new slice with the fine matching id removed from the
// active list. An absent id is a no-op.
func PayFine(list []client.Fine, id string) []client.Fine {
	out := make([]client.Fine, 0, len(list))
	for _, f := range list {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// ReturnLoan returns a new slice with the loan matching id removed.
func ReturnLoan(list []client.Loan, id string) []client.Loan {
	out := make([]client.Loan, 0, len(list))
	for _, l := range list {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// Removals remembers ids removed optimistically so a re-fetch that raced
// the mutation cannot resurrect them in the displayed list.
type Removals struct {
	ids map[string]bool
}

// NewRemovals creates an empty removal set.
func NewRemovals() *Removals {
	return &Removals{ids: make(map[string]bool)}
}

// Mark records an id as locally removed.
func (p *Removals) Mark(id string) {
	p.ids[id] = true
}

// Contains reports whether an id is marked removed.
func (p *Removals) Contains(id string) bool {
	return p.ids[id]
}

// FilterReservations derives the display list from a backend-confirmed
// snapshot minus pending removals.
func (p *Removals) FilterReservations(snapshot []client.Reservation) []client.Reservation {
	out := make([]client.Reservation, 0, len(snapshot))
	for _, r := range snapshot {
		if !p.ids[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// FilterFines derives the display list from a backend-confirmed snapshot
// minus pending removals.
func (p *Removals) FilterFines(snapshot []client.Fine) []client.Fine {
	out := make([]client.Fine, 0, len(snapshot))
	for _, f := range snapshot {
		if !p.ids[f.ID] {
			out = append(out, f)
		}
	}
	return out
}

// FilterLoans derives the display list from a backend-confirmed snapshot
// minus pending removals.
func (p *Removals) FilterLoans(snapshot []client.Loan) []client.Loan {
	out := make([]client.Loan, 0, len(snapshot))
	for _, l := range snapshot {
		if !p.ids[l.ID] {
			out = append(out, l)
		}
	}
	return out
}
