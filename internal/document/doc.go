// Package document holds the authoritative plain text the table
// subsystem edits against. It models the host editor's document-text
// collaborator: offset-range slicing, a single-writer Replace entry
// point, and per-change offset mapping delivered to listeners in
// registration order.
package document
