// Package history persists the list of files uploaded from this machine.
//
// The whole list is one JSON array stored in a single local storage slot
// (common.UploadedFilesKey). Every append is a read-modify-write of that slot
// inside one SQLite transaction. Records keep insertion order and are never
// deduplicated. With a positive limit the oldest records are dropped once the
// list grows past it; a zero limit keeps everything.
package history
