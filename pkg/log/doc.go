// Package log records configuration changes as a machine-readable event
// stream.
//
// It is separate from operational logging (slog). Every item the parser or
// the runtime setting handler changes, or refuses to change, becomes one
// Event carrying the item path and its old and new text.
//
// # Basic Usage
//
//	// Console during development
//	changes := log.NewSlogAdapter(slog.Default())
//
//	// Binary file for later inspection
//	changes, _ := log.NewFileLogger("/var/lib/motioncfg/machine.clog")
//
//	// Both
//	changes := log.Tee(log.NewSlogAdapter(slog.Default()), fileLogger)
//	defer fileLogger.Close() // reports lost events
//
// # File Format
//
// A change log, usually named *.clog, is a sequence of CBOR items: one header
// carrying Magic and FormatVersion, then one map per event with integer keys.
// Files are only ever appended to. `motioncfg log` prints and filters them.
package log
