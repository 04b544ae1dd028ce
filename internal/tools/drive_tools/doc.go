// Package drive_tools exposes Google Drive operations: listing, search,
// upload, download, deletion, folders and sharing.
//
// Downloads land under <workspace>/<account>/downloads unless the caller
// names a local path.
package drive_tools
