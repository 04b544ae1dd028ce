// Package drive holds the Google Drive helpers shared by the storage,
// document and spreadsheet operations: query construction, export rules
// for Google-native files and local download paths.
//
// Example:
//
//	q := drive.FullTextQuery("quarterly report")
//	list, err := svc.Files.List().Q(q).Fields(drive.DefaultListFields).Do()
//
//	path, err := drive.DownloadPath(workspaceDir, "a@example.com", file.Name)
package drive
