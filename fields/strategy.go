package fields

// Strategy is the resolved mechanism for reaching a requirement's value
// from generated code. Exactly three implementations exist: builder-backed,
// parameter-backed and self-constructed (see Resolver's selection rules).
//
// A strategy starts unmaterialized. The first Expression or
// ExpressionDuringInitialization call that needs the member declares it on
// the owning scope, appends its initialization statement, and memoizes the
// resulting MemberRef; there is no way back. Repeated calls, from any
// requesting scope, observe the same member.
type Strategy interface {
	// Requirement returns the requirement this strategy satisfies.
	Requirement() Requirement

	// Expression returns an access expression usable anywhere in the
	// requesting scope's generated code. Materializes the member on first
	// use.
	Expression(requesting ScopeName) Expr

	// ExpressionDuringInitialization returns an access expression usable
	// inside the requesting scope's initialization sequence. Identical to
	// Expression except for builder-backed strategies requested by their
	// owning scope, which read the builder member directly.
	ExpressionDuringInitialization(requesting ScopeName) Expr
}

// fieldAccess carries the behavior shared by all three strategies: lazy,
// memoized materialization of the requirement into a private member of the
// owning scope. Variants supply only the initialization statement through
// the fieldInit hook (and, for builder-backed, the initialization-phase
// override).
type fieldAccess struct {
	req   Requirement
	owner Scope

	// fieldInit produces the initialization statement for a freshly
	// declared member. Set exactly once by the variant constructor.
	fieldInit func(Member) Stmt

	// ref is the memoized member reference, nil until first materialization.
	// Unsynchronized under the single-writer generation model.
	ref *MemberRef
}

// Requirement implements Strategy.
func (f *fieldAccess) Requirement() Requirement { return f.req }

// Expression implements Strategy.
func (f *fieldAccess) Expression(requesting ScopeName) Expr {
	return f.materialize().ExprFor(requesting)
}

// ExpressionDuringInitialization implements Strategy with the default
// behavior: no divergence from general access.
func (f *fieldAccess) ExpressionDuringInitialization(requesting ScopeName) Expr {
	return f.Expression(requesting)
}

// materialize declares the member on the owning scope on first call and
// returns the memoized reference afterwards.
func (f *fieldAccess) materialize() MemberRef {
	if f.ref != nil {
		return *f.ref
	}

	name := f.owner.UniqueMemberName(f.req.VarName)
	member := Member{Name: name, Type: f.req.Type}

	f.owner.AddMember(member)
	f.owner.AddInitialization(f.fieldInit(member))

	ref := MemberRef{Owner: f.owner.Name(), Name: name}
	f.ref = &ref
	return ref
}

// builderBacked reads the requirement's value from a member of the scope's
// builder-like helper (or the builder of an ancestor's base implementation).
type builderBacked struct {
	fieldAccess
	builderMember Member
}

func newBuilderBacked(req Requirement, owner Scope, builderMember Member) *builderBacked {
	s := &builderBacked{
		fieldAccess:   fieldAccess{req: req, owner: owner},
		builderMember: builderMember,
	}
	s.fieldInit = s.initFromBuilder
	return s
}

// ExpressionDuringInitialization overrides the default: inside the owning
// scope's own initialization sequence the builder object is still reachable
// and the materialized member may not be populated yet, so the expression
// reads the builder member directly. From any other (descendant) scope the
// builder is gone and only the already-initialized member works.
func (s *builderBacked) ExpressionDuringInitialization(requesting ScopeName) Expr {
	if requesting == s.owner.Name() {
		return Expr{Kind: ExprBuilderMember, Name: s.builderMember.Name}
	}
	return s.Expression(requesting)
}

func (s *builderBacked) initFromBuilder(m Member) Stmt {
	return Stmt{
		Member: m,
		Value:  Expr{Kind: ExprBuilderMember, Name: s.builderMember.Name},
	}
}

// paramBacked reads the requirement's value from a parameter of the scope's
// factory/creation method. The initialization statement routes the
// parameter through a non-nil check that fails in the generated program's
// runtime when the caller passes nothing.
type paramBacked struct {
	fieldAccess
	param Param
}

func newParamBacked(req Requirement, owner Scope, param Param) *paramBacked {
	s := &paramBacked{
		fieldAccess: fieldAccess{req: req, owner: owner},
		param:       param,
	}
	s.fieldInit = s.initFromParam
	return s
}

func (s *paramBacked) initFromParam(m Member) Stmt {
	return Stmt{
		Member: m,
		Value:  Expr{Kind: ExprNonNilParam, Name: s.param.Name, Type: s.param.Type},
	}
}

// selfConstructed default-constructs the requirement's value in the owning
// scope. Only created for kinds that permit it (Kind.SelfConstructible).
type selfConstructed struct {
	fieldAccess
}

func newSelfConstructed(req Requirement, owner Scope) *selfConstructed {
	s := &selfConstructed{
		fieldAccess: fieldAccess{req: req, owner: owner},
	}
	s.fieldInit = s.initByConstruction
	return s
}

func (s *selfConstructed) initByConstruction(m Member) Stmt {
	return Stmt{
		Member: m,
		Value:  Expr{Kind: ExprNew, Type: s.req.Type},
	}
}
