// Package lifecycle provides the shared status state machine used by the two
// engagement flows (join requests and bookings). Each flow declares its own
// transition table; the mechanics of checking a transition are identical.
package lifecycle

import "errors"

var ErrInvalidTransition = errors.New("invalid status transition")

type Status string

// Table maps each status to the statuses it may transition to. A status with
// no entry (or an empty entry) is terminal.
type Table map[Status][]Status

// Known returns true if s appears in the table, either as a source or as a
// target of some transition.
func (t Table) Known(s Status) bool {
	if _, ok := t[s]; ok {
		return true
	}
	for _, targets := range t {
		for _, target := range targets {
			if target == s {
				return true
			}
		}
	}
	return false
}

// Allowed reports whether the table permits moving from one status to another.
func (t Table) Allowed(from, to Status) bool {
	for _, target := range t[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves the given status.
func (t Table) Terminal(s Status) bool {
	return len(t[s]) == 0
}

// Step validates a transition and returns ErrInvalidTransition if the table
// does not permit it.
func (t Table) Step(from, to Status) error {
	if !t.Allowed(from, to) {
		return ErrInvalidTransition
	}
	return nil
}
