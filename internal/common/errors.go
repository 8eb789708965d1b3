// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth errors.
	ErrNotInitialized = errors.New("authentication system not initialized")
	ErrNoToken        = errors.New("authentication token not available, please sign in")
	ErrInvalidToken   = errors.New("invalid token")

	// Workflow errors.
	ErrNoFileSelected = errors.New("please select a file to upload")
)
