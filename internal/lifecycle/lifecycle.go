// Package lifecycle holds the status state machines for jobs, bids,
// contracts, milestones and deliverables. Every status mutation in the
// service layer goes through Transition against one of these tables, so
// the full set of legal moves is visible in one place.
package lifecycle

import (
	"vfxworks_backend/pkg/apperrors"
)

// Table maps a status to the set of statuses it may move to. A status with
// no entry (or an empty entry) is terminal.
type Table map[string][]string

var JobTransitions = Table{
	"draft":        {"open", "cancelled"},
	"open":         {"under_review", "cancelled"},
	"under_review": {"awarded", "open", "cancelled"},
	"awarded":      {"in_progress", "cancelled"},
	"in_progress":  {"completed", "cancelled"},
	"completed":    {},
	"cancelled":    {},
}

var BidTransitions = Table{
	"pending":     {"shortlisted", "rejected", "accepted"},
	"shortlisted": {"pending", "rejected", "accepted"},
	"rejected":    {},
	"accepted":    {},
}

var ContractTransitions = Table{
	"active":     {"completed", "terminated", "disputed"},
	"disputed":   {"active", "completed", "terminated"},
	"completed":  {},
	"terminated": {},
}

var MilestoneTransitions = Table{
	"pending":   {"in_review"},
	"in_review": {"approved"},
	"approved":  {"paid"},
	"paid":      {},
}

var DeliverableTransitions = Table{
	"submitted":         {"approved", "changes_requested"},
	"changes_requested": {"submitted", "approved"},
	"approved":          {},
}

// Transition validates a move from one status to another against the table.
// It returns nil when the move is legal and an invalid-transition error
// otherwise; self-transitions are never legal.
func Transition(table Table, domain, from, to string) error {
	for _, next := range table[from] {
		if next == to {
			return nil
		}
	}
	return apperrors.ErrInvalidTransition(domain, from, to)
}

// CanTransition reports whether the move is legal without allocating an error.
func CanTransition(table Table, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status has no outgoing transitions.
func Terminal(table Table, status string) bool {
	return len(table[status]) == 0
}
