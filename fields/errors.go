package fields

import (
	"errors"
	"strconv"
)

var (
	// ErrNoOwner is the sentinel behind ResolutionError: no resolver from
	// the requesting scope up to the root owns the requirement.
	ErrNoOwner = errors.New("fields: no owning scope for requirement")

	// ErrNoStrategy is the sentinel behind StrategyCreationError: the
	// owning scope fits none of the three access strategies.
	ErrNoStrategy = errors.New("fields: no access strategy for requirement")
)

// ResolutionError reports a requirement not owned by any scope in the
// resolver chain. It signals a mismatch between the graph builder's
// ownership declarations and the resolver tree actually constructed. It is
// a programming-level invariant violation, never a user input error.
type ResolutionError struct {
	// Requirement is the requirement nothing owns.
	Requirement Requirement
}

// Error implements the error interface.
func (e ResolutionError) Error() string {
	// Example: fields: no owning scope for requirement "cfg" (dependency)
	return "fields: no owning scope for requirement " +
		strconv.Quote(e.Requirement.ID) + " (" + e.Requirement.Kind.String() + ")"
}

// Unwrap makes errors.Is(err, ErrNoOwner) hold.
func (e ResolutionError) Unwrap() error { return ErrNoOwner }

// StrategyCreationError reports a requirement owned by a scope but
// unsatisfiable by any strategy: no builder member, no factory parameter,
// and the kind forbids self-construction. Like ResolutionError it is fatal
// to the generation pass and points at the upstream graph builder.
type StrategyCreationError struct {
	// Requirement is the unsatisfiable requirement.
	Requirement Requirement

	// Scope is the owning scope that could not satisfy it.
	Scope ScopeName
}

// Error implements the error interface.
func (e StrategyCreationError) Error() string {
	// Example: fields: no access strategy for requirement "dep" in scope "AppComponent"
	return "fields: no access strategy for requirement " +
		strconv.Quote(e.Requirement.ID) + " in scope " + strconv.Quote(string(e.Scope))
}

// Unwrap makes errors.Is(err, ErrNoStrategy) hold.
func (e StrategyCreationError) Unwrap() error { return ErrNoStrategy }
