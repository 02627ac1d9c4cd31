// Package graph provides the attributed directed multigraph data
// structure consumed by the evaluator, geometry, and placement
// subsystems. A graph is produced upstream by a grammar-rewriting
// engine outside this repository's scope; this package defines the
// in-memory representation, node/edge validation, and the small
// traversal utilities (reachability, inclusion-cycle detection) the
// rest of the renderer builds on.
package graph
