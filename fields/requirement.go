package fields

// Kind classifies a Requirement for strategy selection.
//
// The kind is decided by the graph builder when the requirement is declared;
// this package only reads it.
type Kind int

const (
	// KindDependency is a value supplied from outside the scope tree,
	// typically through a builder member or a factory parameter. It is
	// never self-constructed.
	KindDependency Kind = iota

	// KindModule is a module-like value with a usable zero-argument
	// construction. The owning scope may default-construct it when nothing
	// else supplies it.
	KindModule

	// KindBoundInstance is a single value bound explicitly through a
	// builder. Like KindDependency, it is never self-constructed.
	KindBoundInstance
)

// SelfConstructible reports whether a requirement of this kind may be
// default-constructed by its owning scope.
func (k Kind) SelfConstructible() bool { return k == KindModule }

// String returns a short human-readable kind name, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindDependency:
		return "dependency"
	case KindModule:
		return "module"
	case KindBoundInstance:
		return "bound-instance"
	default:
		return "unknown"
	}
}

// Requirement identifies a runtime value a scope depends on, independent of
// how that value will be satisfied.
//
// Requirements are immutable value objects. The struct is comparable and is
// used directly as a cache key: two requirements are the same requirement
// exactly when all fields are equal. Multiple scopes may reference the same
// requirement (a child scope needing a value owned by an ancestor).
type Requirement struct {
	// ID is the stable identity of the requirement within one generation
	// pass. The graph builder guarantees uniqueness.
	ID string

	// Kind drives strategy selection (see Kind).
	Kind Kind

	// Type is the value type in the target language, opaque to this package.
	Type string

	// VarName is the suggested member name; the owning scope may adjust it
	// to avoid collisions.
	VarName string
}
