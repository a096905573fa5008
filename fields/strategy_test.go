package fields_test

import (
	"testing"

	"github.com/sghaida/scopewire/fields"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveOne is a test shortcut: a resolver over a single owned requirement.
func resolveOne(t *testing.T, scope *fakeScope, graph *fakeGraph, req fields.Requirement) fields.Strategy {
	t.Helper()

	s, err := fields.NewResolver(graph, scope).Resolve(req)
	require.NoError(t, err)
	return s
}

//
// -----------------------------------------------------------------------------
// Materialization — idempotence and qualification
// -----------------------------------------------------------------------------

// TestExpression_MaterializesExactlyOnce verifies repeated access from any
// mix of requesting scopes yields one member, one initialization statement,
// and references to the same underlying member.
func TestExpression_MaterializesExactlyOnce(t *testing.T) {
	t.Parallel()

	req := fields.Requirement{ID: "cache", Kind: fields.KindModule, Type: "CacheModule", VarName: "cache"}
	scope := newFakeScope("AppComponent")
	s := resolveOne(t, scope, newFakeGraph(req), req)

	local := s.Expression("AppComponent")
	again := s.Expression("AppComponent")
	fromChild := s.Expression("SessionComponent")
	duringInit := s.ExpressionDuringInitialization("SessionComponent")

	assert.Equal(t, local, again)
	assert.Equal(t, local.Name, fromChild.Name)
	assert.Equal(t, fromChild, duringInit)

	assert.Len(t, scope.Members(), 1)
	assert.Len(t, scope.Initializations(), 1)
}

// TestExpression_OwnerQualification verifies direct access for the owning
// scope and owner-qualified access for anyone else.
func TestExpression_OwnerQualification(t *testing.T) {
	t.Parallel()

	req := fields.Requirement{ID: "cache", Kind: fields.KindModule, Type: "CacheModule", VarName: "cache"}
	scope := newFakeScope("AppComponent")
	s := resolveOne(t, scope, newFakeGraph(req), req)

	assert.Equal(t,
		fields.Expr{Kind: fields.ExprMember, Name: "cache"},
		s.Expression("AppComponent"))
	assert.Equal(t,
		fields.Expr{Kind: fields.ExprMember, Owner: "AppComponent", Name: "cache"},
		s.Expression("RequestComponent"))
}

// TestExpression_CollisionFreeNames verifies the suggested name is routed
// through the owning scope's unique-name allocation.
func TestExpression_CollisionFreeNames(t *testing.T) {
	t.Parallel()

	reqA := fields.Requirement{ID: "cacheA", Kind: fields.KindModule, Type: "CacheA", VarName: "cache"}
	reqB := fields.Requirement{ID: "cacheB", Kind: fields.KindModule, Type: "CacheB", VarName: "cache"}
	reqC := fields.Requirement{ID: "cacheC", Kind: fields.KindModule, Type: "CacheC", VarName: "cache2"}

	scope := newFakeScope("AppComponent")
	r := fields.NewResolver(newFakeGraph(reqA, reqB, reqC), scope)

	exprA, err := r.Expression(reqA, scope.Name())
	require.NoError(t, err)
	exprB, err := r.Expression(reqB, scope.Name())
	require.NoError(t, err)
	exprC, err := r.Expression(reqC, scope.Name())
	require.NoError(t, err)

	assert.Equal(t, "cache", exprA.Name)
	assert.Equal(t, "cache2", exprB.Name)
	assert.Equal(t, "cache22", exprC.Name, "a suggestion matching an allocated name must not repeat it")
	assert.Len(t, scope.Members(), 3)
}

//
// -----------------------------------------------------------------------------
// Two-phase access
// -----------------------------------------------------------------------------

// TestBuilderBacked_TwoPhaseDivergence verifies initialization-phase access
// from the owning scope reads the builder member (without materializing),
// while any other requesting scope gets the materialized member expression.
func TestBuilderBacked_TwoPhaseDivergence(t *testing.T) {
	t.Parallel()

	req := fields.Requirement{ID: "cfg", Kind: fields.KindDependency, Type: "Config", VarName: "cfg"}
	scope := newFakeScope("AppComponent")
	scope.builder = fakeBuilder{req: fields.Member{Name: "config", Type: "Config"}}
	s := resolveOne(t, scope, newFakeGraph(req), req)

	fromOwner := s.ExpressionDuringInitialization("AppComponent")
	assert.Equal(t, fields.Expr{Kind: fields.ExprBuilderMember, Name: "config"}, fromOwner)
	assert.Empty(t, scope.Members())
	assert.Empty(t, scope.Initializations())

	fromChild := s.ExpressionDuringInitialization("SessionComponent")
	assert.Equal(t, s.Expression("SessionComponent"), fromChild)
	assert.Equal(t, fields.ExprMember, fromChild.Kind)
	assert.Equal(t, fields.ScopeName("AppComponent"), fromChild.Owner)
	assert.Len(t, scope.Members(), 1)
}

// TestDefaultStrategies_NoTwoPhaseDivergence verifies parameter-backed and
// self-constructed strategies answer both phases identically.
func TestDefaultStrategies_NoTwoPhaseDivergence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		req   fields.Requirement
		graph func(fields.Requirement) *fakeGraph
	}{
		{
			name: "parameter-backed",
			req:  fields.Requirement{ID: "db", Kind: fields.KindDependency, Type: "*DB", VarName: "db"},
			graph: func(req fields.Requirement) *fakeGraph {
				return newFakeGraph(req).withParam(req, fields.Param{Name: "db", Type: "*DB"})
			},
		},
		{
			name:  "self-constructed",
			req:   fields.Requirement{ID: "mod", Kind: fields.KindModule, Type: "Module", VarName: "mod"},
			graph: func(req fields.Requirement) *fakeGraph { return newFakeGraph(req) },
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			scope := newFakeScope("AppComponent")
			s := resolveOne(t, scope, tc.graph(tc.req), tc.req)

			assert.Equal(t, s.Expression("AppComponent"), s.ExpressionDuringInitialization("AppComponent"))
			assert.Equal(t, s.Expression("SessionComponent"), s.ExpressionDuringInitialization("SessionComponent"))
		})
	}
}

//
// -----------------------------------------------------------------------------
// Variant initialization statements
// -----------------------------------------------------------------------------

// TestFieldInitialization_PerVariant verifies each variant appends its own
// initialization statement shape when the member materializes.
func TestFieldInitialization_PerVariant(t *testing.T) {
	t.Parallel()

	t.Run("builder-backed assigns from the builder member", func(t *testing.T) {
		t.Parallel()

		req := fields.Requirement{ID: "cfg", Kind: fields.KindDependency, Type: "Config", VarName: "cfg"}
		scope := newFakeScope("AppComponent")
		scope.builder = fakeBuilder{req: fields.Member{Name: "config", Type: "Config"}}

		s := resolveOne(t, scope, newFakeGraph(req), req)
		_ = s.Expression("AppComponent")

		require.Len(t, scope.Initializations(), 1)
		init := scope.Initializations()[0]
		assert.Equal(t, fields.Member{Name: "cfg", Type: "Config"}, init.Member)
		assert.Equal(t, fields.Expr{Kind: fields.ExprBuilderMember, Name: "config"}, init.Value)
	})

	t.Run("parameter-backed assigns through a non-nil check", func(t *testing.T) {
		t.Parallel()

		req := fields.Requirement{ID: "db", Kind: fields.KindDependency, Type: "*DB", VarName: "db"}
		scope := newFakeScope("AppComponent")
		graph := newFakeGraph(req).withParam(req, fields.Param{Name: "database", Type: "*DB"})

		s := resolveOne(t, scope, graph, req)
		_ = s.Expression("AppComponent")

		require.Len(t, scope.Initializations(), 1)
		assert.Equal(t,
			fields.Expr{Kind: fields.ExprNonNilParam, Name: "database", Type: "*DB"},
			scope.Initializations()[0].Value)
	})

	t.Run("self-constructed assigns a default construction", func(t *testing.T) {
		t.Parallel()

		req := fields.Requirement{ID: "mod", Kind: fields.KindModule, Type: "Module", VarName: "mod"}
		scope := newFakeScope("AppComponent")

		s := resolveOne(t, scope, newFakeGraph(req), req)
		_ = s.Expression("AppComponent")

		require.Len(t, scope.Initializations(), 1)
		assert.Equal(t,
			fields.Expr{Kind: fields.ExprNew, Type: "Module"},
			scope.Initializations()[0].Value)
	})
}

//
// -----------------------------------------------------------------------------
// MemberRef
// -----------------------------------------------------------------------------

// TestMemberRef_ExprFor verifies local vs owner-qualified reads.
func TestMemberRef_ExprFor(t *testing.T) {
	t.Parallel()

	ref := fields.MemberRef{Owner: "AppComponent", Name: "cfg"}

	assert.Equal(t, fields.Expr{Kind: fields.ExprMember, Name: "cfg"}, ref.ExprFor("AppComponent"))
	assert.Equal(t,
		fields.Expr{Kind: fields.ExprMember, Owner: "AppComponent", Name: "cfg"},
		ref.ExprFor("RequestComponent"))
}
