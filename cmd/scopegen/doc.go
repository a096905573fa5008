// Command scopegen — generated component implementations for nested scope trees (Go)
//
// scopegen reads a JSON tree spec describing nested components and their
// requirements, resolves every requirement through the fields engine, and
// emits one Go implementation per component: a struct holding the
// materialized members, an optional builder struct, a constructor running
// the initialization sequence, and accessors for ancestor-owned values.
//
// No container graphs, no reflection injection, no runtime magic — the
// generated wiring is plain structs and constructors you can read.
//
// What scopegen generates
//
// For every component in the tree:
//
//   - type <Name> struct — one private member per materialized requirement,
//     plus a parent pointer for non-root components
//   - type <Name>Builder struct — when the component declares builder
//     members; the constructor copies them into the component
//   - new<Name>(...) — takes the parent (non-root), the builder (when
//     present) and the factory parameters; runs the initialization
//     statements in resolution order; nil-checks factory parameters whose
//     type is spelled nilable (pointer, slice, map, channel, func) and
//     panics on nil (the generated program's runtime error, not scopegen's).
//     Interface-typed parameters spell like named value types in a spec, so
//     they receive no guard
//   - one accessor per "uses" declaration, reading the ancestor's member
//     through the parent chain
//
// How requirements are satisfied
//
// Strategy selection is the fields engine's, in fixed priority order:
//
//   1. builder member (an ancestor base implementation's builder wins over
//      the component's own)
//   2. factory method parameter
//   3. default construction, for module-kind requirements only
//
// A requirement satisfiable by none of the three aborts generation; so does
// a "uses" reference no ancestor owns. Both point at a broken spec, not at
// user input.
//
// Spec overview
//
// A tree spec names the target package and the root component. Components
// declare requirements (id, kind, type, optional var name), optional builder
// and factory mappings, optional base implementation, "uses" references to
// ancestor requirements, and children. See model.LoadTree for defaults and
// validation.
//
// Type names in the spec are emitted verbatim; they must resolve in the
// target package. scopegen does not manage imports.
//
// Typical go:generate usage
//
//	//go:generate go run github.com/sghaida/scopewire/cmd/scopegen -spec tree.json -out wiring.gen.go
//
// Then:
//
//	go generate ./...
//
// Output is formatted with go/format and written atomically (temp file plus
// rename), with a header carrying the spec path and its sha256 so stale
// output is easy to spot in review.
package main
