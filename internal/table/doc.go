// Package table implements the structured model for markdown pipe
// tables: a rectangular Grid of raw cell strings with per-column
// alignments, a parser from syntax nodes to a span-preserving
// TableAST, column width computation, and the canonical padded
// serializer.
//
// Render and Parse are pure and form a round trip: parsing the output
// of Render reproduces the same cell strings (modulo padding) and
// alignments. The Grid is the mutable working state the interactive
// editor owns; the AST is immutable once parsed.
package table
