// Package persistence stores the machine configuration file.
//
// Saves are atomic: the new content is written to a temporary file in the
// same directory and renamed over the old one. The previous content is kept
// next to it with a .bak suffix.
package persistence
