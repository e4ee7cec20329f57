// Package session implements the study cursor: which due card is shown, the
// reveal flag, and how the position is re-derived after the due list is
// recomputed.
//
// State is a plain value. Every transition takes the current state plus the
// lengths it needs and returns a new state, so the rules can be exercised
// without a service, a store or an HTTP layer around them.
package session
