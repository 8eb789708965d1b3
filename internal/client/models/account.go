// Package models defines client-side data models used by the fshare CLI.
package models

// Account is the projection of the signed-in session that the rest of the
// client reads. It is owned by the auth adapter.
type Account struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	HomeAccountID string `json:"homeAccountId"`
	TenantID      string `json:"tenantId"`
}

// Claims is the decoded ID-token payload, kept as an opaque bag.
type Claims map[string]any

// String returns the claim as a string, or "" when it is absent or not a
// string.
func (c Claims) String(name string) string {
	if c == nil {
		return ""
	}
	s, _ := c[name].(string)
	return s
}

// Profile is the user profile returned by the identity provider's profile
// endpoint.
type Profile struct {
	ID                string
	DisplayName       string
	Name              string
	Mail              string
	UserPrincipalName string
}

// Author returns the name stamped on uploads: DisplayName, else Name, else "".
func (p *Profile) Author() string {
	if p == nil {
		return ""
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// Label returns the name shown in the welcome banner.
func (p *Profile) Label() string {
	if a := p.Author(); a != "" {
		return a
	}
	return "Authenticated User"
}
