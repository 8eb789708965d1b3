// Package cli provides the interactive fshare command-line client.
//
// It wires configuration, local storage, the authenticator, the upload and
// data services and a terminal renderer, then runs a REPL. Typical flow:
// initialize authentication (loading the provider's discovery document and
// picking up a cached session), sign in through the browser, select a file
// and upload it, then list past uploads.
//
// App is the only place that decides whether the user is signed in; it does
// so in RefreshUserState, after startup and after every successful sign-in.
//
// Commands:
//
//	login            sign in through the browser
//	logout           sign out
//	select <path>    pick a file to upload
//	reset            forget the picked file
//	upload [path]    upload the picked file, or path
//	history          list uploaded files
//	data [-f]        show the data endpoint payload; -f bypasses the cache
//	whoami           show the signed-in account and its ID token claims
//	help, exit
package cli
