package fields_test

import (
	"strconv"
	"testing"

	"github.com/sghaida/scopewire/fields"
)

/*
   Shared helpers (NOT counted in benchmarks)
*/

var benchReq = fields.Requirement{ID: "cfg", Kind: fields.KindModule, Type: "Config", VarName: "cfg"}

func newBenchRoot() *fields.Resolver {
	return fields.NewResolver(newFakeGraph(benchReq), newFakeScope("Root"))
}

// newBenchChain hangs depth empty resolvers below a root that owns benchReq.
func newBenchChain(depth int) *fields.Resolver {
	r := newBenchRoot()
	for i := 0; i < depth; i++ {
		r = r.ForChild(newFakeGraph(), newFakeScope(fields.ScopeName("Child"+strconv.Itoa(i))))
	}
	return r
}

/*
   Benchmarks
*/

func BenchmarkResolve_CacheHit(b *testing.B) {
	r := newBenchRoot()
	if _, err := r.Resolve(benchReq); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Resolve(benchReq)
	}
}

func BenchmarkResolve_DelegatedDepth8(b *testing.B) {
	leaf := newBenchChain(8)
	if _, err := leaf.Resolve(benchReq); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = leaf.Resolve(benchReq)
	}
}

func BenchmarkExpression_Materialized(b *testing.B) {
	r := newBenchRoot()
	s, err := r.Resolve(benchReq)
	if err != nil {
		b.Fatal(err)
	}
	_ = s.Expression("Root")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Expression("Root")
	}
}
