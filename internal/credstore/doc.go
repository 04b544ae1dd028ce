// Package credstore persists OAuth credential records, one JSON file per
// account, named after the account's email address.
//
// The store performs no network calls. A record is either absent or holds at
// least an access token and a token endpoint; Load treats an unreadable or
// incomplete file as absent.
package credstore
