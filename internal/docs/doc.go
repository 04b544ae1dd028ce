// Package docs extracts readable text from Google Docs documents.
//
// Both legacy documents (content under Body) and tabbed documents (content
// under Tabs, possibly nested) are supported.
package docs
