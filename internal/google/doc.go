// Package google manages OAuth 2.0 credentials for any number of Google
// accounts and mints authenticated API handles for them.
//
// A Manager drives the authorization-code grant (BeginAuthorization,
// CompleteAuthorization), persists one credential record per account
// through a credstore.Store, and refreshes expired access tokens on demand.
// Refresh for a single account is serialised by an in-process lock so that
// parallel requests never race on the credential file.
//
// Handles returned by Manager.Handles are per request and are never cached.
package google
