// Package docs_tools exposes Google Docs operations. Creation, copying and
// listing go through Drive, so these operations hold both a Docs and a
// Drive handle.
package docs_tools
