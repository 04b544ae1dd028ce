// Package calendar converts loosely typed event arguments into Calendar v3
// structures and applies attendee responses and partial updates to events.
package calendar
