package fields_test

import (
	"strconv"

	"github.com/sghaida/scopewire/fields"
)

//
// -----------------------------------------------------------------------------
// Fabricated collaborators
//
// The resolver takes its graph view and scope explicitly, so tests fabricate
// both and observe every member/statement the engine materializes.
// -----------------------------------------------------------------------------

// fakeBuilder maps requirements to builder members.
type fakeBuilder map[fields.Requirement]fields.Member

// Member implements fields.BuilderView.
func (b fakeBuilder) Member(req fields.Requirement) (fields.Member, bool) {
	m, ok := b[req]
	return m, ok
}

// fakeScope records everything the engine does to it.
type fakeScope struct {
	name    fields.ScopeName
	members []fields.Member
	inits   []fields.Stmt
	taken   map[string]bool

	builder fields.BuilderView // nil when the scope has no builder
	base    fields.Scope       // nil when the scope refines nothing
}

func newFakeScope(name fields.ScopeName) *fakeScope {
	return &fakeScope{name: name, taken: map[string]bool{}}
}

// Name implements fields.Scope.
func (s *fakeScope) Name() fields.ScopeName { return s.name }

// UniqueMemberName implements fields.Scope: the suggestion when free,
// otherwise the first free suffixed form.
func (s *fakeScope) UniqueMemberName(suggested string) string {
	if !s.taken[suggested] {
		s.taken[suggested] = true
		return suggested
	}
	for n := 2; ; n++ {
		name := suggested + strconv.Itoa(n)
		if !s.taken[name] {
			s.taken[name] = true
			return name
		}
	}
}

// AddMember implements fields.Scope.
func (s *fakeScope) AddMember(m fields.Member) { s.members = append(s.members, m) }

// Members implements fields.Scope.
func (s *fakeScope) Members() []fields.Member { return s.members }

// AddInitialization implements fields.Scope.
func (s *fakeScope) AddInitialization(st fields.Stmt) { s.inits = append(s.inits, st) }

// Initializations implements fields.Scope.
func (s *fakeScope) Initializations() []fields.Stmt { return s.inits }

// Builder implements fields.Scope.
func (s *fakeScope) Builder() (fields.BuilderView, bool) {
	if s.builder == nil {
		return nil, false
	}
	return s.builder, true
}

// Base implements fields.Scope.
func (s *fakeScope) Base() (fields.Scope, bool) {
	if s.base == nil {
		return nil, false
	}
	return s.base, true
}

// fakeGraph declares ownership and factory parameters per scope.
type fakeGraph struct {
	owned  map[fields.Requirement]bool
	params map[fields.Requirement]fields.Param
}

func newFakeGraph(owned ...fields.Requirement) *fakeGraph {
	g := &fakeGraph{
		owned:  map[fields.Requirement]bool{},
		params: map[fields.Requirement]fields.Param{},
	}
	for _, req := range owned {
		g.owned[req] = true
	}
	return g
}

func (g *fakeGraph) withParam(req fields.Requirement, p fields.Param) *fakeGraph {
	g.params[req] = p
	return g
}

// Owns implements fields.GraphView.
func (g *fakeGraph) Owns(req fields.Requirement) bool { return g.owned[req] }

// FactoryParameter implements fields.GraphView.
func (g *fakeGraph) FactoryParameter(req fields.Requirement) (fields.Param, bool) {
	p, ok := g.params[req]
	return p, ok
}
