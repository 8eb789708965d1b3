// Package client contains the fshare client's outbound building blocks.
//
// # Overview
//
//  1. Object storage: the ObjectClient contract used for both PUTs of an
//     upload, with three backends. HTTPObjectClient talks to the upload
//     endpoint (bearer token, Asset-Path header). S3ObjectClient and
//     MinioObjectClient write into an S3-compatible bucket.
//  2. Download links: Linker builds the public URL for an object key, either
//     by joining the download endpoint (EndpointLinker) or by presigning a
//     GET on the S3 backend.
//  3. Data endpoint: HTTPDataClient performs the authenticated, cache-busted
//     GET used by the data view.
//  4. Local persistence bootstrap: InitDatabase opens SQLite and applies the
//     embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are reported as *netx.StatusError regardless of backend.
// Transport failures wrap ErrUnavailable.
package client
