// Package auth signs users in against an OpenID Connect provider and keeps
// the resulting session in local storage.
//
// Sign-in runs the OAuth 2.0 authorization-code flow with PKCE. The
// authorization URL is opened in the system browser and the code is received
// on a loopback listener bound to 127.0.0.1. The provider's discovery
// document is loaded lazily by MetadataLoader; when it cannot be loaded the
// endpoints are derived from the authority URL.
//
// Session layout in local storage (single key, JSON):
//
//	fshare.session = {"idToken": ..., "accessToken": ..., "refreshToken": ...,
//	                  "expiry": ..., "account": {...}}
package auth
