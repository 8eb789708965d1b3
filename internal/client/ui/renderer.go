package ui

import (
	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

type State string

const (
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
	StateFileSelected    State = "file-selected"
	StateError           State = "error"
)

// Renderer is the presentation surface the orchestrator drives.
type Renderer interface {
	ShowAuthenticated(profile *models.Profile, claims models.Claims)
	ShowUnauthenticated()
	ShowClaims(claims models.Claims)
	ShowFileInfo(name, sizeKB string)
	ClearFileInfo()
	ShowDownloadLink(url string)
	ShowHistory(records []models.UploadRecord)
	ShowError(msg string)
	ShowData(payload json.RawMessage)
	ShowInfo(msg string)
	State() State
}
