// Package op provides small, synchronous operations utilities:
// JSON text <-> value conversion, filesystem primitives, JSON file
// persistence with configurable encodings, timestamp helpers, and a
// dotted-path accessor over nested mappings.
//
// Every function is a single blocking call with no internal retry or
// locking. Callers that touch the same path concurrently must
// serialize access themselves.
package op
