package fields

// Member is a private member declared on a scope's generated artifact.
type Member struct {
	// Name is the collision-free member name within the owning scope.
	Name string

	// Type is the member's value type in the target language.
	Type string
}

// Param is a parameter of a scope's factory/creation method.
type Param struct {
	// Name is the parameter name.
	Name string

	// Type is the parameter's type in the target language.
	Type string
}

// ExprKind discriminates the structural shapes an Expr can take.
type ExprKind int

const (
	// ExprMember reads a materialized member, optionally qualified by the
	// owning scope when read from a different scope.
	ExprMember ExprKind = iota

	// ExprBuilderMember reads a member of the scope's builder object.
	// Only valid inside the owning scope's own initialization sequence,
	// where the builder is still reachable.
	ExprBuilderMember

	// ExprNew default-constructs a value of Type.
	ExprNew

	// ExprNonNilParam reads a factory parameter through a non-nil check
	// that fails in the generated program's runtime if the caller passed
	// nothing.
	ExprNonNilParam
)

// Expr is an opaque structural access expression, ready for rendering by
// the emission layer. Which fields are meaningful depends on Kind.
type Expr struct {
	Kind ExprKind

	// Owner qualifies an ExprMember read from a scope other than the
	// owner. Empty for local reads and for every other kind.
	Owner ScopeName

	// Name is the member name (ExprMember, ExprBuilderMember) or the
	// parameter name (ExprNonNilParam).
	Name string

	// Type is the constructed value type (ExprNew) or the parameter type
	// (ExprNonNilParam).
	Type string
}

// Stmt is a structural initialization statement: assign Value to Member on
// the scope being initialized.
type Stmt struct {
	Member Member
	Value  Expr
}

// MemberRef is the result of materializing an access strategy: a member now
// present on the owning scope, reachable from any requesting scope.
type MemberRef struct {
	// Owner is the scope the member was declared on.
	Owner ScopeName

	// Name is the member's collision-free name on that scope.
	Name string
}

// ExprFor returns an expression reading the member from the requesting
// scope: a direct read when the requester is the owner, an owner-qualified
// read otherwise (the generated runtime model exposes ancestor instances to
// descendants).
func (r MemberRef) ExprFor(requesting ScopeName) Expr {
	if requesting == r.Owner {
		return Expr{Kind: ExprMember, Name: r.Name}
	}
	return Expr{Kind: ExprMember, Owner: r.Owner, Name: r.Name}
}
