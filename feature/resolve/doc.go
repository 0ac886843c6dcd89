// Package resolve expands wildcard key patterns into the concrete object keys
// they match in a bucket.
//
// # Pattern Syntax
//
// A pattern contains exactly one '*'. The text before it is the listing prefix.
// When the marker is the last character the pattern matches the keys directly
// under the prefix. Otherwise the marker stands for one "directory" level and
// is followed by a separator: the suffix starts two characters after the
// marker, so "logs/*/data.json" lists prefix "logs/" and appends "data.json"
// to every common prefix returned ("logs/a/" → "logs/a/data.json").
//
// # Resolution
//
// Patterns are processed in order, one listing page at a time, following
// continuation tokens until the listing is exhausted. Keys from all patterns
// are merged and sorted once at the end. Duplicates produced by overlapping
// patterns are kept.
//
// Any failure aborts the whole call: a malformed pattern is reported before
// the first listing request, and a listing error discards every key collected
// so far.
//
// # HTTP Endpoints
//
//   - POST /resolve : Resolves one pattern set (optionally persisting a manifest).
//   - POST /resolve/batch : Resolves independent pattern sets concurrently.
package resolve
