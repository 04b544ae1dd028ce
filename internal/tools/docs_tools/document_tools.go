package docs_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	docs_v1 "google.golang.org/api/docs/v1"
	drive_v3 "google.golang.org/api/drive/v3"

	"github.com/chaitanya2108/Google-Workspace/internal/docs"
	"github.com/chaitanya2108/Google-Workspace/internal/drive"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// Document is the output of get_workspace_document.
type Document struct {
	Title      string `json:"title"`
	DocumentID string `json:"documentId"`
	Content    string `json:"content"`
	RevisionID string `json:"revisionId,omitempty"`
}

// DocumentEntry is one row of list_workspace_documents.
type DocumentEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedTime  string `json:"createdTime"`
	ModifiedTime string `json:"modifiedTime"`
	URL          string `json:"url"`
}

// DocumentList is the output of list_workspace_documents.
type DocumentList struct {
	Documents     []DocumentEntry `json:"documents"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
	Total         int             `json:"total"`
}

func documentIDParam() mcp.ToolOption {
	return mcp.WithString("documentId",
		mcp.Required(),
		mcp.Description("ID of the document"),
	)
}

func registerDocumentTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("create_workspace_document",
		mcp.WithDescription("Create a new Google Doc"),
		common.AccountParam(),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Document title"),
		),
		mcp.WithString("parentFolderId",
			mcp.Description("Drive folder to place the document in"),
		),
	), withServices(auth, handleCreate))

	s.Add(mcp.NewTool("copy_workspace_document",
		mcp.WithDescription("Copy an existing Google Doc"),
		common.AccountParam(),
		documentIDParam(),
		mcp.WithString("newTitle",
			mcp.Description("Title of the copy"),
		),
	), withServices(auth, handleCopy))

	s.Add(mcp.NewTool("get_workspace_document",
		mcp.WithDescription("Get a Google Doc with its plain text content"),
		common.AccountParam(),
		documentIDParam(),
		mcp.WithString("suggestionsViewMode",
			mcp.Enum("DEFAULT_FOR_CURRENT_ACCESS", "SUGGESTIONS_INLINE", "PREVIEW_SUGGESTIONS_ACCEPTED", "PREVIEW_WITHOUT_SUGGESTIONS"),
			mcp.Description("How suggested changes are rendered"),
		),
	), withServices(auth, handleGet))

	s.Add(mcp.NewTool("list_workspace_documents",
		mcp.WithDescription("List Google Docs"),
		common.AccountParam(),
		mcp.WithString("q",
			mcp.Description("Drive query (default: all Google Docs)"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Number of documents to return (default: 10)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token for the next page"),
		),
	), withServices(auth, handleList))
}

func handleCreate(ctx context.Context, svc services, args map[string]any) *tools.Result {
	title, err := common.RequireString(args, "title")
	if err != nil {
		return tools.Failure(err)
	}
	created, err := svc.docs.Documents.Create(&docs_v1.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	if folder := common.String(args, "parentFolderId"); folder != "" {
		if err := drive.MoveToFolder(ctx, svc.drive, created.DocumentId, folder); err != nil {
			return tools.Failure(err)
		}
	}
	return tools.Text(fmt.Sprintf("Document created successfully!\n\nDocument ID: %s\nTitle: %s\nURL: %s",
		created.DocumentId, title, docs.URL(created.DocumentId)))
}

func handleCopy(ctx context.Context, svc services, args map[string]any) *tools.Result {
	docID, err := common.RequireString(args, "documentId")
	if err != nil {
		return tools.Failure(err)
	}
	copied, err := svc.drive.Files.Copy(docID, &drive_v3.File{Name: common.String(args, "newTitle")}).
		Fields("id, name").
		Context(ctx).
		Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Text(fmt.Sprintf("Document copied successfully!\n\nOriginal Document ID: %s\nNew Document ID: %s\nTitle: %s\nURL: %s",
		docID, copied.Id, copied.Name, docs.URL(copied.Id)))
}

func handleGet(ctx context.Context, svc services, args map[string]any) *tools.Result {
	docID, err := common.RequireString(args, "documentId")
	if err != nil {
		return tools.Failure(err)
	}
	call := svc.docs.Documents.Get(docID).Context(ctx)
	if mode := common.String(args, "suggestionsViewMode"); mode != "" {
		call = call.SuggestionsViewMode(mode)
	}
	doc, err := call.Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Data(Document{
		Title:      doc.Title,
		DocumentID: doc.DocumentId,
		Content:    docs.PlainText(doc),
		RevisionID: doc.RevisionId,
	})
}

func handleList(ctx context.Context, svc services, args map[string]any) *tools.Result {
	call := svc.drive.Files.List().
		Q(common.StringDefault(args, "q", "mimeType='"+docs.MimeType+"'")).
		PageSize(common.Int(args, "pageSize", 10)).
		Fields("nextPageToken, files(id, name, createdTime, modifiedTime, parents, webViewLink)").
		Context(ctx)
	if v := common.String(args, "pageToken"); v != "" {
		call = call.PageToken(v)
	}
	list, err := call.Do()
	if err != nil {
		return tools.Failure(err)
	}

	out := DocumentList{Documents: make([]DocumentEntry, 0, len(list.Files)), NextPageToken: list.NextPageToken}
	for _, f := range list.Files {
		out.Documents = append(out.Documents, DocumentEntry{
			ID:           f.Id,
			Name:         f.Name,
			CreatedTime:  f.CreatedTime,
			ModifiedTime: f.ModifiedTime,
			URL:          f.WebViewLink,
		})
	}
	out.Total = len(out.Documents)
	return tools.Data(out)
}
