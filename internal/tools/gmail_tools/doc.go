// Package gmail_tools exposes Gmail operations: search, send, drafts,
// labels and account settings.
package gmail_tools
