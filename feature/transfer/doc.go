// Package transfer moves single objects between the storage bucket and the local filesystem.
//
// # Operations
//
//   - DownloadToFile: streams an object into a local file, creating parent directories.
//     A failed copy removes the partially written file.
//   - UploadFile: streams a local file into the bucket.
//   - ObjectSize: reports the size in bytes of a stored object.
//
// Every failure is returned as a *TransferError matching ErrTransferFailure. The backend
// error stays in the chain, so a missing object also matches storage.ErrNotFound.
//
// # HTTP Endpoints
//
//   - GET /objects/size?key=...&bucket=... : Returns the size of an object (404 when missing).
package transfer
