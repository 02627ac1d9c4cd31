package graph

import "errors"

// Error taxonomy for the attributed graph, per the error handling
// design: CircularEvaluation and DuplicateAttribute are raised by the
// graph and evaluator; MalformedGraph covers the remaining structural
// invariants (bad "!" arity, missing required attributes, inclusion
// cycles).
var (
	// ErrCircularEvaluation is raised when evaluating a node that is
	// already an ancestor in the current evaluation chain.
	ErrCircularEvaluation = errors.New("circular evaluation")

	// ErrDuplicateAttribute is raised when two outgoing edges from the
	// same parent share a non-null tag.
	ErrDuplicateAttribute = errors.New("duplicate attribute tag")

	// ErrMalformedGraph covers structural invariant violations that are
	// not circularity or duplicate tags: "!" with an arity other than
	// one, a drawable node missing a required attribute, or a cycle in
	// the untagged inclusion subgraph.
	ErrMalformedGraph = errors.New("malformed graph")
)
