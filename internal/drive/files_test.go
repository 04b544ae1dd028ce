package drive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportMimeType(t *testing.T) {
	tests := []struct {
		name      string
		fileType  string
		requested string
		want      string
	}{
		{"native defaults to pdf", DocumentMimeType, "", "application/pdf"},
		{"native with explicit format", SpreadsheetMimeType, "text/csv", "text/csv"},
		{"binary keeps its type", "image/png", "", "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportMimeType(tt.fileType, tt.requested))
		})
	}
	assert.True(t, IsGoogleNative(FolderMimeType))
	assert.False(t, IsGoogleNative("application/pdf"))
}

func TestFullTextQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report", `fullText contains 'report'`},
		{"bob's notes", `fullText contains 'bob\'s notes'`},
		{`a\b`, `fullText contains 'a\\b'`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FullTextQuery(tt.in))
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"a/b\\c:d", "a_b_c_d"},
		{"tab\there", "tabhere"},
		{"..", "download"},
		{"   ", "download"},
		{"", "download"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestDownloadPath(t *testing.T) {
	root := t.TempDir()

	got, err := DownloadPath(root, "a@x.com", "../secret.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a@x.com", "downloads", ".._secret.txt"), got)

	_, err = DownloadPath(root, "..", "x")
	assert.Error(t, err)
}
