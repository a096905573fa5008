package fields

// Resolver is the per-scope resolution engine. One resolver exists per
// scope being generated, chained parent→child to mirror the nesting of the
// scope tree. The parent link, graph view and scope are fixed at
// construction; only the strategy cache mutates, lazily, and entries are
// never evicted for the lifetime of the generation pass.
//
// Resolvers are not safe for concurrent use (see package doc).
type Resolver struct {
	parent *Resolver
	graph  GraphView
	scope  Scope

	// cache memoizes one Strategy per owned requirement, so any number of
	// callers (including descendant resolvers) observe the same member.
	cache map[Requirement]Strategy
}

// NewResolver returns the root resolver of a generation pass, bound to the
// root scope and its graph view.
func NewResolver(graph GraphView, scope Scope) *Resolver {
	return &Resolver{
		graph: graph,
		scope: scope,
		cache: make(map[Requirement]Strategy),
	}
}

// ForChild returns a new resolver for a child scope, chained to this one.
// The receiver is not mutated; any number of children may chain to it.
func (r *Resolver) ForChild(graph GraphView, scope Scope) *Resolver {
	child := NewResolver(graph, scope)
	child.parent = r
	return child
}

// Scope returns the scope this resolver is bound to.
func (r *Resolver) Scope() Scope { return r.scope }

// Resolve returns the access strategy for a requirement, walking up the
// resolver chain to the owning scope and creating the strategy there on
// first demand.
//
// It returns ResolutionError when no resolver in the chain owns the
// requirement, and StrategyCreationError when the owning scope cannot
// satisfy it by any strategy. Both are fatal to the generation pass.
func (r *Resolver) Resolve(req Requirement) (Strategy, error) {
	if r.graph.Owns(req) {
		if s, ok := r.cache[req]; ok {
			return s, nil
		}
		s, err := r.create(req)
		if err != nil {
			return nil, err
		}
		r.cache[req] = s
		return s, nil
	}
	if r.parent != nil {
		return r.parent.Resolve(req)
	}
	return nil, ResolutionError{Requirement: req}
}

// Expression resolves the requirement and returns its general access
// expression for the requesting scope. See Strategy.Expression.
func (r *Resolver) Expression(req Requirement, requesting ScopeName) (Expr, error) {
	s, err := r.Resolve(req)
	if err != nil {
		return Expr{}, err
	}
	return s.Expression(requesting), nil
}

// ExpressionDuringInitialization resolves the requirement and returns its
// initialization-phase access expression for the requesting scope. See
// Strategy.ExpressionDuringInitialization.
func (r *Resolver) ExpressionDuringInitialization(req Requirement, requesting ScopeName) (Expr, error) {
	s, err := r.Resolve(req)
	if err != nil {
		return Expr{}, err
	}
	return s.ExpressionDuringInitialization(requesting), nil
}

// create selects the strategy for an owned requirement, in fixed priority
// order: builder member, factory parameter, self-construction.
func (r *Resolver) create(req Requirement) (Strategy, error) {
	if builder, ok := builderView(r.scope); ok {
		if m, ok := builder.Member(req); ok {
			return newBuilderBacked(req, r.scope, m), nil
		}
	}
	if p, ok := r.graph.FactoryParameter(req); ok {
		return newParamBacked(req, r.scope, p), nil
	}
	if req.Kind.SelfConstructible() {
		return newSelfConstructed(req, r.scope), nil
	}
	return nil, StrategyCreationError{Requirement: req, Scope: r.scope.Name()}
}

// builderView picks the builder to consult during strategy selection: the
// builder of the scope's base implementation when both exist, otherwise the
// scope's own. The base builder takes precedence so that a member stays
// shared across a scope-refinement hierarchy.
func builderView(s Scope) (BuilderView, bool) {
	if base, ok := s.Base(); ok {
		if b, ok := base.Builder(); ok {
			return b, true
		}
	}
	return s.Builder()
}
