// Package generator reads a configuration tree back out.
//
// Walk drives a config.Handler of type config.HandlerGenerator over a tree
// and hands every item, already converted to text, to a Sink. The YAML and
// JSON generators are Sinks; so is the snapshot encoder in package snapshot.
//
// Output is in declaration order. Floats carry three decimals, pins are
// written by description, UART formats as mode strings such as "8N1",
// speed maps as "speed=percent%" lists and enumerations by name. An
// enumeration value with no name is written as an integer.
package generator
