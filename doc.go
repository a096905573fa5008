// Package scopewire resolves how generated component code reaches the
// runtime values it depends on.
//
// A code generator emits one artifact per node of a nested component tree
// ("scopes"). Each scope depends on values it cannot build from bindings
// alone: module instances, bound instances, parent-supplied dependencies.
// This repository decides, at generation time, how each of those values is
// reached from generated code (read from a builder, taken as a factory
// parameter, or default-constructed) and makes sure every value becomes a
// private member of exactly one owning scope, exactly once.
//
// The goal is to keep the binding layer small and explicit: resolvers form
// a parent-linked chain mirroring the scope tree, resolution is a cached
// walk up that chain, and failures are programming-error conditions that
// abort generation rather than recoverable input errors.
//
// See subpackages:
//   - fields: the requirement-to-field resolution engine
//   - model: declarative component-tree model (JSON specs, concrete scopes)
//   - cmd/scopegen: code generator driving fields through a model tree
//   - examples/*: runnable walk-throughs of the resolution engine
package scopewire
