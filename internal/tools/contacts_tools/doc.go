// Package contacts_tools exposes Google Contacts through the People API.
package contacts_tools
