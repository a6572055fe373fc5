// Package driver wires source loading, lexing and parsing together for the
// command line: single files, inline text, YAML rule sets and whole
// directories checked in parallel with an on-disk diagnostics cache.
package driver
