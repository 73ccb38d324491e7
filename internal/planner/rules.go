package planner

import "github.com/lf-edge/egraph/pkg/ast"

// optRule is a single logical optimization over a traversal. Rules rewrite
// the plan in place and must leave it unchanged once their fixed point is
// reached, so running a rule twice is always safe.
type optRule interface {
	// name identifies the rule for configuration toggles and logs.
	name() string
	// priors names the rules that must have run before this one.
	priors() []string
	// shouldApply reports whether the rule could contribute anything to t
	// or any traversal nested beneath it. It must be cheap; apply does the
	// real work.
	shouldApply(t *ast.Traversal) bool
	// apply rewrites the top level of one traversal. The optimizer drives
	// it over the root and every nested sub-traversal separately.
	apply(t *ast.Traversal)
}
