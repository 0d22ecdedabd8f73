// Package sari provides a full-text indexing and regular-expression
// search engine over a fixed byte corpus.
//
// A corpus is indexed once, via index.Build, into one of the backend
// kinds behind the uniform index.Index façade: suffix tree, suffix
// array, augmented suffix array, or n-gram index. A compressed suffix
// tree kind is declared, but Build returns an error for it.
// Queries are expressed in the small regex grammar implemented by
// package regex (literals, character classes, `.`, union, concatenation,
// bounded repetition) and planned and run against an index by
// exec.Driver, which runs every sub-expression with the evaluator chosen
// by option (black-box set composition or pull-based token enumeration,
// the pull-based direction being planned per sub-expression), and folds
// results across top-level `.*` wildcards.
//
// See SPEC_FULL.md for the full module map and the invariants each
// package upholds.
package sari
