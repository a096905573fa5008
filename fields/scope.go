package fields

// ScopeName identifies one scope of the component tree.
//
// Names are unique within a generation pass; member qualification compares
// names, not scope objects, so fabricated scopes in tests stay trivial.
type ScopeName string

// Scope is the generated artifact under construction for one node of the
// component tree. It is owned by the surrounding generator, not by this
// package; resolvers only call into it.
//
// Implementations are expected to be single-threaded alongside the resolver
// that uses them (see package doc).
type Scope interface {
	// Name returns the scope's identity.
	Name() ScopeName

	// UniqueMemberName returns a collision-free member name seeded with the
	// suggested name. Successive calls with the same suggestion return
	// distinct names.
	UniqueMemberName(suggested string) string

	// AddMember declares a private member on the generated artifact.
	AddMember(m Member)

	// Members returns the members declared so far, in declaration order.
	Members() []Member

	// AddInitialization appends a statement to the scope's initialization
	// sequence.
	AddInitialization(s Stmt)

	// Initializations returns the initialization sequence so far, in order.
	Initializations() []Stmt

	// Builder returns the builder-like helper associated with the scope,
	// if the scope has one.
	Builder() (BuilderView, bool)

	// Base returns the ancestor base implementation this scope refines,
	// if any. Its builder takes precedence over the scope's own during
	// strategy selection.
	Base() (Scope, bool)
}

// BuilderView exposes the requirement-to-member mapping of a builder-like
// helper associated with a scope.
type BuilderView interface {
	// Member returns the builder member holding the requirement's value,
	// if the builder was given one.
	Member(req Requirement) (Member, bool)
}

// GraphView is the dependency-graph view for a single scope, as decided by
// the external graph builder. This package queries the decisions; it never
// computes them.
type GraphView interface {
	// Owns reports whether this scope owns the requirement. Non-owned
	// requirements are delegated to the parent resolver.
	Owns(req Requirement) bool

	// FactoryParameter returns the factory method parameter carrying the
	// requirement's value. ok is false when the scope has no factory
	// method or the method's parameters do not include the requirement.
	FactoryParameter(req Requirement) (Param, bool)
}
