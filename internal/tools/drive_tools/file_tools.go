package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	drive_v3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/chaitanya2108/Google-Workspace/internal/drive"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// FileList is the output of list_drive_files and search_drive_files.
type FileList struct {
	Files         []*drive_v3.File `json:"files"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
	Total         int              `json:"total"`
	Query         string           `json:"query,omitempty"`
}

func registerFileTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("list_drive_files",
		mcp.WithDescription("List files in Google Drive with filtering and pagination"),
		common.AccountParam(),
		mcp.WithNumber("pageSize",
			mcp.Description("Number of files to return (default: 10)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token for the next page"),
		),
		mcp.WithString("q",
			mcp.Description("Drive query string, e.g. \"mimeType='application/pdf'\""),
		),
		mcp.WithString("orderBy",
			mcp.Description("Sort keys, e.g. 'name', 'modifiedTime desc'"),
		),
		mcp.WithString("fields",
			mcp.Description("Partial response selector"),
		),
	), common.WithHandles(auth, handleList))

	s.Add(mcp.NewTool("search_drive_files",
		mcp.WithDescription("Full-text search across Drive content"),
		common.AccountParam(),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to search for"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Number of results to return (default: 10)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token for the next page"),
		),
	), common.WithHandles(auth, handleSearch))

	s.Add(mcp.NewTool("delete_drive_file",
		mcp.WithDescription("Permanently delete a file from Google Drive"),
		common.AccountParam(),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("ID of the file to delete"),
		),
	), common.WithHandles(auth, handleDelete))

	s.Add(mcp.NewTool("create_drive_folder",
		mcp.WithDescription("Create a folder in Google Drive"),
		common.AccountParam(),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Folder name"),
		),
		mcp.WithArray("parents",
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Parent folder IDs"),
		),
		mcp.WithString("description",
			mcp.Description("Folder description"),
		),
	), common.WithHandles(auth, handleCreateFolder))
}

func handleList(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	svc, err := h.Drive(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	call := svc.Files.List().
		PageSize(common.Int(args, "pageSize", 10)).
		Fields(googleapi.Field(common.StringDefault(args, "fields", drive.DefaultListFields))).
		Context(ctx)
	if v := common.String(args, "pageToken"); v != "" {
		call = call.PageToken(v)
	}
	if v := common.String(args, "q"); v != "" {
		call = call.Q(v)
	}
	if v := common.String(args, "orderBy"); v != "" {
		call = call.OrderBy(v)
	}

	list, err := call.Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Data(newFileList(list, ""))
}

func handleSearch(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	query, err := common.RequireString(args, "query")
	if err != nil {
		return tools.Failure(err)
	}
	svc, err := h.Drive(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	call := svc.Files.List().
		Q(drive.FullTextQuery(query)).
		PageSize(common.Int(args, "pageSize", 10)).
		Fields(drive.DefaultListFields).
		Context(ctx)
	if v := common.String(args, "pageToken"); v != "" {
		call = call.PageToken(v)
	}

	list, err := call.Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Data(newFileList(list, query))
}

func newFileList(list *drive_v3.FileList, query string) FileList {
	files := list.Files
	if files == nil {
		files = []*drive_v3.File{}
	}
	return FileList{Files: files, NextPageToken: list.NextPageToken, Total: len(files), Query: query}
}

func handleDelete(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	fileID, err := common.RequireString(args, "fileId")
	if err != nil {
		return tools.Failure(err)
	}
	svc, err := h.Drive(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	if err := svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return tools.Failure(err)
	}
	return tools.Text("File deleted successfully. File ID: " + fileID)
}

func handleCreateFolder(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	name, err := common.RequireString(args, "name")
	if err != nil {
		return tools.Failure(err)
	}
	folder := &drive_v3.File{
		Name:        name,
		MimeType:    drive.FolderMimeType,
		Description: common.String(args, "description"),
		Parents:     common.StringSlice(args, "parents"),
	}

	svc, err := h.Drive(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	created, err := svc.Files.Create(folder).Fields("id, name, parents").Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Text("Folder created successfully. Folder ID: " + created.Id + ", Name: " + created.Name)
}
