// Package fields resolves component requirements into generated members.
//
// A Resolver exists per scope being generated and chains to the resolver of
// the enclosing scope. Asking a resolver for a requirement walks up the
// chain to the owning scope, picks one of exactly three access strategies,
// and lazily materializes a private member on the owner:
//
//   - builder-backed: the value was supplied through the scope's builder
//     (or the builder of an ancestor's base implementation)
//   - parameter-backed: the value arrives as a factory method parameter
//   - self-constructed: the scope default-constructs the value itself
//
// Materialization is memoized: for any requirement and owning scope, the
// member is declared once, its initialization statement is appended once,
// and every caller observes the same member reference afterwards.
//
// Two access phases exist. General access (Expression) always goes through
// the materialized member. Initialization-phase access
// (ExpressionDuringInitialization) differs only for builder-backed
// strategies requested by the owning scope itself: there the builder object
// is still reachable, so the expression reads the builder member directly
// and no member needs to be materialized yet.
//
// The package produces structural values (Expr, Stmt, Member), not syntax.
// Rendering them into a target language is the emission layer's job; see
// cmd/scopegen for one such renderer.
//
// Concurrency
//
// Generation of one component tree is single-threaded. Resolver caches and
// strategy memoization are intentionally unsynchronized; resolvers must not
// be shared across goroutines generating sibling scopes concurrently.
//
// Errors
//
// Both error kinds are fatal to a generation pass and signal upstream
// invariant violations, never bad user input:
//
//   - ResolutionError (wraps ErrNoOwner): no resolver in the chain owns the
//     requirement — the graph builder's declarations and the resolver tree
//     disagree.
//   - StrategyCreationError (wraps ErrNoStrategy): the owning scope fits
//     none of the three strategies.
//
// Import
//
//	"github.com/sghaida/scopewire/fields"
package fields
