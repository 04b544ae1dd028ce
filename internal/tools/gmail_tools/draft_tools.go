package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	gmail_v1 "google.golang.org/api/gmail/v1"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

var draftActions = []string{"create", "list", "get", "update", "delete"}

func registerDraftTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("manage_workspace_draft",
		mcp.WithDescription("Create, list, read, update or delete Gmail drafts"),
		common.AccountParam(),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Enum(draftActions...),
			mcp.Description("Operation to perform"),
		),
		mcp.WithString("draftId",
			mcp.Description("Draft ID (required for get, update and delete)"),
		),
		mcp.WithString("to",
			mcp.Description("Recipient email address(es), comma-separated (create, update)"),
		),
		mcp.WithString("subject",
			mcp.Description("Draft subject (create, update)"),
		),
		mcp.WithString("body",
			mcp.Description("Draft body (create, update)"),
		),
	), common.WithHandles(auth, handleDraft))
}

func handleDraft(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	action, err := common.Enum(args, "action", "", draftActions...)
	if err != nil {
		return tools.Failure(err)
	}

	// Validate before minting the handle so bad input never reaches Google.
	var draft *gmail_v1.Draft
	if action == "create" || action == "update" {
		msg, err := messageFromArgs(args, false)
		if err != nil {
			return tools.Failure(err)
		}
		raw, err := msg.Raw()
		if err != nil {
			return tools.Failure(apperrors.Validation("%s", err.Error()))
		}
		draft = &gmail_v1.Draft{Message: &gmail_v1.Message{Raw: raw}}
	}
	var draftID string
	if action == "get" || action == "update" || action == "delete" {
		if draftID, err = common.RequireString(args, "draftId"); err != nil {
			return tools.Failure(err)
		}
	}

	svc, err := h.Gmail(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	drafts := svc.Users.Drafts

	switch action {
	case "create":
		created, err := drafts.Create(userID, draft).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Draft created. ID: " + created.Id)
	case "list":
		list, err := drafts.List(userID).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Data(list)
	case "get":
		got, err := drafts.Get(userID, draftID).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Data(got)
	case "update":
		draft.Id = draftID
		updated, err := drafts.Update(userID, draftID, draft).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Draft updated. ID: " + updated.Id)
	default:
		if err := drafts.Delete(userID, draftID).Context(ctx).Do(); err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Draft deleted")
	}
}
