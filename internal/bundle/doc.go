// Package bundle reads and writes the export bundle for one drawing:
// a JSON-lines stream with a manifest record, a scene record, and one
// action record per line. The action log stays one-record-per-line so
// external tooling can stream or truncate it without parsing the whole
// file.
package bundle
