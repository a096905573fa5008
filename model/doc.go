// Package model turns declarative component-tree specs into concrete
// scopes and graph views for the fields resolution engine.
//
// A tree spec (usually JSON, see LoadTree) declares one component per node:
// its requirements, the builder members and factory parameters that satisfy
// them, the ancestor requirements it uses, and its children. Build
// materializes the spec into a Tree of Components, each paired with its
// fields.Resolver, ready for a generator to walk top-down.
//
// Component implements fields.Scope: it records declared members and
// initialization statements and hands out collision-free member names. The
// per-component graph view implements fields.GraphView from the spec's
// ownership and factory declarations. Both stay private to this package;
// consumers interact through the fields interfaces.
//
// Validation follows the generators' rule of thumb: collect everything wrong
// with a spec and report it in one error, so authors fix a file in one pass.
//
// Import
//
//	"github.com/sghaida/scopewire/model"
package model
