// Package ui renders the fshare client's views on a terminal.
//
// The renderer tracks one of four mutually exclusive view states
// (authenticated, unauthenticated, file-selected, error) so callers and
// tests can tell which view was shown last.
package ui
