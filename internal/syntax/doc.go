// Package syntax provides the generic syntax-tree model the table
// subsystem consumes: named, offset-bearing nodes with parent, child,
// and sibling links, built per document state.
//
// The concrete builder is backed by goldmark with GFM tables enabled.
// Table nodes are rebuilt line by line so each row exposes its pipe
// delimiters as explicit TableDelimiter tokens interleaved with
// TableCell nodes; empty cells produce no node at all, leaving adjacent
// delimiter runs for the table parser to interpret. Consumers depend
// only on the Node and Tree types, never on goldmark directly.
package syntax
