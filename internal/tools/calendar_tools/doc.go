// Package calendar_tools exposes Google Calendar event operations: list,
// get, create, update, respond and delete.
package calendar_tools
