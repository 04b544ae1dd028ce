// Package sheets_tools exposes Google Sheets value operations. Creating a
// spreadsheet in a folder goes through Drive, so these operations hold both
// a Sheets and a Drive handle.
package sheets_tools
