// Package integrity provides health checks for the bucket and the manifest database.
//
// # Checks Provided
//
//   - Structure: Checks that every configured pattern prefix holds at least one object.
//     Missing folder prefixes can be recreated as empty marker objects.
//   - Manifest: Re-checks the keys recorded in a stored manifest against the bucket.
//   - Drift: Re-resolves the patterns of a stored manifest and reconciles the
//     fresh key list with the recorded one.
//   - Schema: Validates that the manifest tables match their GORM models (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs the structure and schema checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/manifests/:id : Re-checks a stored manifest.
//   - GET /integrity/manifests/:id/drift : Reports drift since the manifest was recorded.
package integrity
