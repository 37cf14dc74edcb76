// Package snapshot encodes a configuration tree as CBOR for transmission.
//
// A snapshot is an envelope holding the tree as nested maps keyed by item
// name. Encoding is deterministic: the same tree always yields the same
// bytes for the same Taken time.
//
// Restore feeds a snapshot back through the parser, so every bound and pin
// check applies exactly as for a YAML file.
package snapshot
