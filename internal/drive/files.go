package drive

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const (
	// FolderMimeType marks a Drive folder.
	FolderMimeType = "application/vnd.google-apps.folder"
	// DocumentMimeType marks a Google Docs document.
	DocumentMimeType = "application/vnd.google-apps.document"
	// SpreadsheetMimeType marks a Google Sheets spreadsheet.
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

	// DefaultExportMimeType is used when a Google-native file is
	// downloaded without an explicit format.
	DefaultExportMimeType = "application/pdf"
	// DefaultUploadMimeType is used when an upload names no type.
	DefaultUploadMimeType = "application/octet-stream"

	// DefaultListFields is the partial response requested for listings.
	DefaultListFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime, createdTime, parents)"

	googleAppsPrefix = "application/vnd.google-apps."
	fallbackFileName = "download"
)

// IsGoogleNative reports whether mimeType is a Docs editors type that has
// no binary content and must be exported.
func IsGoogleNative(mimeType string) bool {
	return strings.HasPrefix(mimeType, googleAppsPrefix)
}

// ExportMimeType picks the download format. Native files default to PDF,
// other files keep their own type.
func ExportMimeType(fileMimeType, requested string) string {
	if requested != "" {
		return requested
	}
	if IsGoogleNative(fileMimeType) {
		return DefaultExportMimeType
	}
	return fileMimeType
}

// EscapeQuery escapes a value for use inside a single-quoted Drive query
// string.
func EscapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// FullTextQuery builds a full-text search clause for text.
func FullTextQuery(text string) string {
	return "fullText contains '" + EscapeQuery(text) + "'"
}

// SanitizeFileName reduces a Drive file name to a single safe path
// element. Separators and control characters are replaced and names that
// would resolve outside the target directory are rejected.
func SanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return fallbackFileName
	}
	return cleaned
}

// DownloadPath returns <workspaceDir>/<account>/downloads/<name>.
func DownloadPath(workspaceDir, account, name string) (string, error) {
	acct := SanitizeFileName(account)
	if acct == fallbackFileName && account != fallbackFileName {
		return "", errors.Errorf("invalid account %q", account)
	}
	return filepath.Join(workspaceDir, acct, "downloads", SanitizeFileName(name)), nil
}
