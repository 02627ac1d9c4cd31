// Package evaluator evaluates the attributed graph's operator-tagged
// nodes (!, +, ##, rgb, translate, scale, skewX, skewY, rotate) into
// concrete string values, memoising each operator node's result and
// detecting circular evaluation along the ancestry chain.
//
// The operator set is fixed and closed: this is not a general
// expression language (see spec.md's Non-goals). Every operator reads
// either the node's untagged children (!, +) or its tagged children
// (##, rgb, translate/scale, skewX/skewY/rotate), per the filtering
// graph.Graph.UntaggedChildren and graph.Graph.TaggedChildren already
// enforce at the data-model layer.
//
// Numeric coercion failures inside "+", "rgb", and the numeric
// children of translate/scale/skewX/skewY/rotate silently default to
// zero: an operator must always produce a syntactically valid output
// string even when a child is malformed. Circular evaluation,
// malformed-! arity, and a reference to a missing node are the only
// errors this package raises; all are fatal.
package evaluator
