package model

import (
	"strconv"

	"github.com/sghaida/scopewire/fields"
)

// Tree is a materialized component tree: one Component per spec node, each
// paired with its resolver, chained to mirror the nesting.
type Tree struct {
	// Package is the generated output's package name.
	Package string

	root *Component
}

// Root returns the root component.
func (t *Tree) Root() *Component { return t.root }

// Walk visits components top-down (parents before children) and stops at
// the first error.
func (t *Tree) Walk(fn func(c *Component) error) error {
	var visit func(c *Component) error
	visit = func(c *Component) error {
		if err := fn(c); err != nil {
			return err
		}
		for _, child := range c.children {
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(t.root)
}

// Build materializes a tree spec into components and resolvers. The spec is
// defaulted and validated first, so Build accepts hand-assembled specs as
// well as LoadTree output.
func Build(spec *TreeSpec) (*Tree, error) {
	spec.applyDefaults()
	if err := spec.validate(); err != nil {
		return nil, err
	}

	byID := map[string]fields.Requirement{}

	var build func(cs *ComponentSpec, parent *Component) (*Component, error)
	build = func(cs *ComponentSpec, parent *Component) (*Component, error) {
		c := &Component{
			name:   fields.ScopeName(cs.Name),
			parent: parent,
			taken:  map[string]bool{},
		}

		graph := &graphView{
			owned:  map[fields.Requirement]bool{},
			params: map[fields.Requirement]fields.Param{},
		}
		local := map[string]fields.Requirement{}
		for _, rs := range cs.Requirements {
			kind, err := ParseKind(rs.Kind)
			if err != nil {
				return nil, err
			}
			req := fields.Requirement{ID: rs.ID, Kind: kind, Type: rs.Type, VarName: rs.Var}
			c.requirements = append(c.requirements, req)
			graph.owned[req] = true
			local[req.ID] = req
			byID[req.ID] = req
		}

		if len(cs.Builder) > 0 {
			c.builder = newBuilderView(cs.Builder, local)
		}
		for _, fs := range cs.Factory {
			req := local[fs.Requirement]
			p := fields.Param{Name: fs.Param, Type: req.Type}
			c.factory = append(c.factory, p)
			graph.params[req] = p
		}
		if cs.Base != nil {
			c.base = &baseImpl{
				name:  fields.ScopeName(cs.Base.Name),
				taken: map[string]bool{},
			}
			if len(cs.Base.Builder) > 0 {
				c.base.builder = newBuilderView(cs.Base.Builder, local)
			}
		}

		// Validation guarantees every used ID was declared by an ancestor,
		// and ancestors are built before their children.
		for _, id := range cs.Uses {
			c.uses = append(c.uses, byID[id])
		}

		if parent == nil {
			c.resolver = fields.NewResolver(graph, c)
		} else {
			c.resolver = parent.resolver.ForChild(graph, c)
		}

		for i := range cs.Children {
			child, err := build(&cs.Children[i], c)
			if err != nil {
				return nil, err
			}
			c.children = append(c.children, child)
		}
		return c, nil
	}

	root, err := build(&spec.Root, nil)
	if err != nil {
		return nil, err
	}
	return &Tree{Package: spec.Package, root: root}, nil
}

// Component is one scope of the tree. It implements fields.Scope by
// recording declared members and initialization statements and handing out
// collision-free member names.
type Component struct {
	name     fields.ScopeName
	parent   *Component
	children []*Component
	resolver *fields.Resolver

	requirements []fields.Requirement
	uses         []fields.Requirement
	factory      []fields.Param
	builder      *builderView
	base         *baseImpl

	members []fields.Member
	inits   []fields.Stmt
	taken   map[string]bool
}

// Parent returns the enclosing component, nil for the root.
func (c *Component) Parent() *Component { return c.parent }

// Children returns the nested components in declaration order.
func (c *Component) Children() []*Component { return c.children }

// Resolver returns the resolver bound to this component.
func (c *Component) Resolver() *fields.Resolver { return c.resolver }

// Requirements returns the owned requirements in declaration order.
func (c *Component) Requirements() []fields.Requirement { return c.requirements }

// Uses returns the ancestor-owned requirements this component reads.
func (c *Component) Uses() []fields.Requirement { return c.uses }

// FactoryParams returns the factory method parameters in declaration order,
// empty when the component has no factory method.
func (c *Component) FactoryParams() []fields.Param { return c.factory }

// BuilderMembers returns the members of the builder consulted during
// strategy selection, in declaration order: the base implementation's
// builder when present, otherwise the component's own. The generated
// builder struct carries exactly these members, so initialization
// statements that read the builder always resolve.
func (c *Component) BuilderMembers() []fields.Member {
	if c.base != nil && c.base.builder != nil {
		return c.base.builder.ordered
	}
	if c.builder == nil {
		return nil
	}
	return c.builder.ordered
}

// Name implements fields.Scope.
func (c *Component) Name() fields.ScopeName { return c.name }

// UniqueMemberName implements fields.Scope with a suffix counter.
func (c *Component) UniqueMemberName(suggested string) string {
	return uniqueName(c.taken, suggested)
}

// AddMember implements fields.Scope.
func (c *Component) AddMember(m fields.Member) { c.members = append(c.members, m) }

// Members implements fields.Scope.
func (c *Component) Members() []fields.Member { return c.members }

// AddInitialization implements fields.Scope.
func (c *Component) AddInitialization(s fields.Stmt) { c.inits = append(c.inits, s) }

// Initializations implements fields.Scope.
func (c *Component) Initializations() []fields.Stmt { return c.inits }

// Builder implements fields.Scope.
func (c *Component) Builder() (fields.BuilderView, bool) {
	if c.builder == nil {
		return nil, false
	}
	return c.builder, true
}

// Base implements fields.Scope.
func (c *Component) Base() (fields.Scope, bool) {
	if c.base == nil {
		return nil, false
	}
	return c.base, true
}

// builderView maps requirements to builder members.
type builderView struct {
	members map[fields.Requirement]fields.Member
	ordered []fields.Member
}

func newBuilderView(specs []BuilderMemberSpec, local map[string]fields.Requirement) *builderView {
	v := &builderView{members: make(map[fields.Requirement]fields.Member, len(specs))}
	for _, bs := range specs {
		req := local[bs.Requirement]
		m := fields.Member{Name: bs.Member, Type: req.Type}
		v.members[req] = m
		v.ordered = append(v.ordered, m)
	}
	return v
}

// Member implements fields.BuilderView.
func (v *builderView) Member(req fields.Requirement) (fields.Member, bool) {
	m, ok := v.members[req]
	return m, ok
}

// graphView implements fields.GraphView from a component's declarations.
type graphView struct {
	owned  map[fields.Requirement]bool
	params map[fields.Requirement]fields.Param
}

// Owns implements fields.GraphView.
func (g *graphView) Owns(req fields.Requirement) bool { return g.owned[req] }

// FactoryParameter implements fields.GraphView.
func (g *graphView) FactoryParameter(req fields.Requirement) (fields.Param, bool) {
	p, ok := g.params[req]
	return p, ok
}

// baseImpl is the scope of a previously generated base implementation. The
// resolution engine consults its builder during strategy selection; members
// materialized against it are recorded like any other scope's.
type baseImpl struct {
	name    fields.ScopeName
	builder *builderView

	members []fields.Member
	inits   []fields.Stmt
	taken   map[string]bool
}

// Name implements fields.Scope.
func (b *baseImpl) Name() fields.ScopeName { return b.name }

// UniqueMemberName implements fields.Scope.
func (b *baseImpl) UniqueMemberName(suggested string) string {
	return uniqueName(b.taken, suggested)
}

// AddMember implements fields.Scope.
func (b *baseImpl) AddMember(m fields.Member) { b.members = append(b.members, m) }

// Members implements fields.Scope.
func (b *baseImpl) Members() []fields.Member { return b.members }

// AddInitialization implements fields.Scope.
func (b *baseImpl) AddInitialization(s fields.Stmt) { b.inits = append(b.inits, s) }

// Initializations implements fields.Scope.
func (b *baseImpl) Initializations() []fields.Stmt { return b.inits }

// Builder implements fields.Scope.
func (b *baseImpl) Builder() (fields.BuilderView, bool) {
	if b.builder == nil {
		return nil, false
	}
	return b.builder, true
}

// Base implements fields.Scope; base implementations refine nothing further.
func (b *baseImpl) Base() (fields.Scope, bool) { return nil, false }

// uniqueName allocates collision-free names: the suggestion itself when
// free, otherwise the first free suffixed form (cache, cache2, cache3, ...).
// Every handed-out name is recorded, so a suggestion that spells an earlier
// allocation (suggesting "cache2" after "cache", "cache") stays unique too.
func uniqueName(taken map[string]bool, suggested string) string {
	if !taken[suggested] {
		taken[suggested] = true
		return suggested
	}
	for n := 2; ; n++ {
		name := suggested + strconv.Itoa(n)
		if !taken[name] {
			taken[name] = true
			return name
		}
	}
}
