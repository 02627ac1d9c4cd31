// Package validation implements C12: the external attribute-validator
// predicate (spec.md §6's is_valid(element, attribute, value)) plus
// post-render structural checks (bounding-box monotonicity, disjoint
// relation satisfaction, viewBox containment) consumed by the
// "-validate" CLI flag and by tests.
//
// The attribute validator (Validator, DefaultValidator) is explicitly
// swappable: spec.md treats the full table of acceptable attribute
// names as an external predicate it does not define, so DefaultValidator
// is a convenience, not a correctness claim.
package validation
