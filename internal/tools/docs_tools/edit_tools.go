package docs_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	docs_v1 "google.golang.org/api/docs/v1"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

func registerEditTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("insert_text_into_document",
		mcp.WithDescription("Insert text into a Google Doc"),
		common.AccountParam(),
		documentIDParam(),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to insert"),
		),
		mcp.WithNumber("index",
			mcp.Description("Insertion index (default: 1, the start of the body)"),
		),
		mcp.WithString("tabId",
			mcp.Description("Tab to edit"),
		),
	), withServices(auth, handleInsert))

	s.Add(mcp.NewTool("delete_text_from_document",
		mcp.WithDescription("Delete a range of text from a Google Doc"),
		common.AccountParam(),
		documentIDParam(),
		mcp.WithNumber("startIndex",
			mcp.Required(),
			mcp.Description("Start of the range (inclusive)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Required(),
			mcp.Description("End of the range (exclusive)"),
		),
		mcp.WithString("tabId",
			mcp.Description("Tab to edit"),
		),
	), withServices(auth, handleDelete))

	s.Add(mcp.NewTool("batch_update_document",
		mcp.WithDescription("Apply a list of Docs API edit requests"),
		common.AccountParam(),
		documentIDParam(),
		mcp.WithArray("requests",
			mcp.Required(),
			mcp.Description("Docs API batchUpdate requests"),
		),
	), withServices(auth, handleBatch))
}

func handleInsert(ctx context.Context, svc services, args map[string]any) *tools.Result {
	docID, err := common.RequireString(args, "documentId")
	if err != nil {
		return tools.Failure(err)
	}
	text, err := common.RequireString(args, "text")
	if err != nil {
		return tools.Failure(err)
	}
	index := common.Int(args, "index", 1)
	if index < 1 {
		return tools.Failure(apperrors.Validation("index must be at least 1"))
	}

	req := &docs_v1.Request{InsertText: &docs_v1.InsertTextRequest{
		Text:     text,
		Location: &docs_v1.Location{Index: index, TabId: common.String(args, "tabId")},
	}}
	if err := batchUpdate(ctx, svc, docID, req); err != nil {
		return tools.Failure(err)
	}
	return tools.Text(fmt.Sprintf("Text inserted successfully at index %d", index))
}

func handleDelete(ctx context.Context, svc services, args map[string]any) *tools.Result {
	docID, err := common.RequireString(args, "documentId")
	if err != nil {
		return tools.Failure(err)
	}
	start, err := common.RequireInt(args, "startIndex")
	if err != nil {
		return tools.Failure(err)
	}
	end, err := common.RequireInt(args, "endIndex")
	if err != nil {
		return tools.Failure(err)
	}
	if end <= start {
		return tools.Failure(apperrors.Validation("endIndex must be greater than startIndex"))
	}

	req := &docs_v1.Request{DeleteContentRange: &docs_v1.DeleteContentRangeRequest{
		Range: &docs_v1.Range{StartIndex: start, EndIndex: end, TabId: common.String(args, "tabId")},
	}}
	if err := batchUpdate(ctx, svc, docID, req); err != nil {
		return tools.Failure(err)
	}
	return tools.Text(fmt.Sprintf("Text deleted successfully from index %d to %d", start, end))
}

func handleBatch(ctx context.Context, svc services, args map[string]any) *tools.Result {
	docID, err := common.RequireString(args, "documentId")
	if err != nil {
		return tools.Failure(err)
	}
	var reqs []*docs_v1.Request
	if err := common.Decode(args, "requests", &reqs); err != nil {
		return tools.Failure(err)
	}
	if len(reqs) == 0 {
		return tools.Failure(apperrors.Validation("requests must not be empty"))
	}
	if err := batchUpdate(ctx, svc, docID, reqs...); err != nil {
		return tools.Failure(err)
	}
	return tools.Text(fmt.Sprintf("Batch update completed successfully. %d requests processed.", len(reqs)))
}

func batchUpdate(ctx context.Context, svc services, docID string, reqs ...*docs_v1.Request) error {
	_, err := svc.docs.Documents.BatchUpdate(docID, &docs_v1.BatchUpdateDocumentRequest{Requests: reqs}).
		Context(ctx).
		Do()
	return err
}
