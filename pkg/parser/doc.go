// Package parser populates a configuration tree from YAML.
//
// The Parser is a config.Handler of type config.HandlerParser. It walks the
// tree alongside a yaml.v3 node tree, consuming each key at most once:
//
//	bank := pin.NewESP32Bank()
//	err := parser.Parse(data, m, parser.WithPins(bank))
//
// # Errors
//
// A value that fails its bound, format or pin check is not stored. The
// failure is recorded as a *config.ValidationError and traversal continues,
// so Parse reports every bad item at once, joined with errors.Join.
//
// Keys that no node claimed are logged as ignored at Warn level.
//
// # Change events
//
// Every stored value, and every refused one, is sent to the change log
// (see package log) under a per-parse session ID.
package parser
