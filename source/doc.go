// Package source defines where candidate feature records come from. A Source
// enumerates record identifiers and loads individual records; Dir serves a
// directory of JSON feature files.
package source
