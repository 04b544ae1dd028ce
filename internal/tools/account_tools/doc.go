// Package account_tools exposes account management: listing the stored
// accounts, starting an authorization and removing an account.
package account_tools
