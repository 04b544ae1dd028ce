package drive_tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	drive_v3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/drive"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// Download is the output of download_drive_file.
type Download struct {
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Path     string `json:"path"`
	Bytes    int64  `json:"bytes"`
	Exported bool   `json:"exported"`
}

func registerTransferTools(s *tools.Set, auth common.Authenticator, workspaceDir string) {
	s.Add(mcp.NewTool("upload_drive_file",
		mcp.WithDescription("Upload a local file to Google Drive"),
		common.AccountParam(),
		mcp.WithString("filePath",
			mcp.Required(),
			mcp.Description("Path of the local file to upload"),
		),
		mcp.WithString("name",
			mcp.Description("Name in Drive (default: the local file name)"),
		),
		mcp.WithArray("parents",
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Parent folder IDs"),
		),
		mcp.WithString("description",
			mcp.Description("File description"),
		),
		mcp.WithString("mimeType",
			mcp.Description("Content type (default: application/octet-stream)"),
		),
	), common.WithHandles(auth, handleUpload))

	s.Add(mcp.NewTool("download_drive_file",
		mcp.WithDescription("Download a Drive file to local disk, exporting Google Docs editors files"),
		common.AccountParam(),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("ID of the file to download"),
		),
		mcp.WithString("mimeType",
			mcp.Description("Export format for Google-native files (default: application/pdf)"),
		),
		mcp.WithString("localPath",
			mcp.Description("Target path (default: workspace/<email>/downloads/<name>)"),
		),
	), common.WithHandles(auth, func(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
		return handleDownload(ctx, h, args, workspaceDir)
	}))
}

func handleUpload(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	path, err := common.RequireString(args, "filePath")
	if err != nil {
		return tools.Failure(err)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tools.Failure(apperrors.NotFound("File not found: %s", path))
		}
		return tools.Failure(apperrors.Validation("cannot read %s: %v", path, err))
	}
	defer f.Close()
	if info, err := f.Stat(); err == nil && info.IsDir() {
		return tools.Failure(apperrors.Validation("%s is a directory", path))
	}

	mimeType := common.StringDefault(args, "mimeType", drive.DefaultUploadMimeType)
	meta := &drive_v3.File{
		Name:        common.StringDefault(args, "name", filepath.Base(path)),
		Description: common.String(args, "description"),
		Parents:     common.StringSlice(args, "parents"),
		MimeType:    mimeType,
	}

	svc, err := h.Drive(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	created, err := svc.Files.Create(meta).
		Media(f, googleapi.ContentType(mimeType)).
		Fields("id, name, mimeType, size, parents").
		Context(ctx).
		Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Text(fmt.Sprintf("File uploaded successfully. File ID: %s, Name: %s", created.Id, created.Name))
}

func handleDownload(ctx context.Context, h *google.Handles, args map[string]any, workspaceDir string) *tools.Result {
	fileID, err := common.RequireString(args, "fileId")
	if err != nil {
		return tools.Failure(err)
	}

	svc, err := h.Drive(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	meta, err := svc.Files.Get(fileID).Fields("name, mimeType").Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}

	target := common.String(args, "localPath")
	if target == "" {
		if target, err = drive.DownloadPath(workspaceDir, h.Account(), meta.Name); err != nil {
			return tools.Failure(apperrors.Validation("%s", err.Error()))
		}
	}

	native := drive.IsGoogleNative(meta.MimeType)
	mimeType := drive.ExportMimeType(meta.MimeType, common.String(args, "mimeType"))

	var resp *http.Response
	if native {
		resp, err = svc.Files.Export(fileID, mimeType).Context(ctx).Download()
	} else {
		resp, err = svc.Files.Get(fileID).Context(ctx).Download()
	}
	if err != nil {
		return tools.Failure(err)
	}
	defer resp.Body.Close()

	n, err := writeFile(target, resp.Body)
	if err != nil {
		return tools.Failure(apperrors.Internal(err, "failed to write "+target))
	}

	return &tools.Result{
		Data: Download{
			FileID:   fileID,
			Name:     meta.Name,
			MimeType: mimeType,
			Path:     target,
			Bytes:    n,
			Exported: native,
		},
		Message: "File downloaded successfully to: " + target,
	}
}

// writeFile streams r into path through a temporary sibling so a failed
// download never leaves a truncated file behind.
func writeFile(path string, r io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}
