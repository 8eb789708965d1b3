// Package common contains shared constants, sentinel errors and small helpers
// used across the fshare client packages.
package common

// Header names understood by the upload endpoint.
const (
	AuthorizationHeaderName = "Authorization"
	AssetPathHeaderName     = "Asset-Path"
	ContentTypeHeaderName   = "Content-Type"
)

// Content types used when the caller cannot tell the type of a file.
const (
	DefaultContentType = "application/octet-stream"
	JSONContentType    = "application/json"
)

// UploadedFilesKey is the local storage slot holding the upload history.
const UploadedFilesKey = "uploadedFiles"

// UnknownUserName is stamped on uploads when no profile is available.
const UnknownUserName = "Unknown User"
