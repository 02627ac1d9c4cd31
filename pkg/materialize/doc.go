// Package materialize implements C4, the element materialiser: it
// sits between C3 (attribute evaluation) and C1/C2 (geometry),
// producing a rendered Element record per drawable graph node. See
// materialize.go for the per-tag geometry table and the attribute
// validator integration.
package materialize
