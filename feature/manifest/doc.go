// Package manifest persists resolved key lists so a resolution can be replayed
// later without listing the bucket again.
//
// A manifest records the bucket, the patterns and the ordered keys produced by
// one resolution. Storage is the optional MySQL database (via GORM); when the
// database is unavailable the rest of the service keeps working without it.
//
// # HTTP Endpoints
//
//   - GET /manifests/:id : Returns a stored manifest and its keys.
package manifest
