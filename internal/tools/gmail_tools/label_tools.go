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

var labelActions = []string{"create", "list", "get", "delete"}

func registerLabelTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("manage_workspace_label",
		mcp.WithDescription("Create, list, read or delete Gmail labels"),
		common.AccountParam(),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Enum(labelActions...),
			mcp.Description("Operation to perform"),
		),
		mcp.WithString("labelId",
			mcp.Description("Label ID (required for get and delete)"),
		),
		mcp.WithString("name",
			mcp.Description("Label name (required for create)"),
		),
		mcp.WithString("labelListVisibility",
			mcp.Enum("labelShow", "labelShowIfUnread", "labelHide"),
			mcp.Description("Visibility in the label list (default: labelShow)"),
		),
		mcp.WithString("messageListVisibility",
			mcp.Enum("show", "hide"),
			mcp.Description("Visibility in the message list (default: show)"),
		),
	), common.WithHandles(auth, handleLabel))

	s.Add(mcp.NewTool("manage_workspace_label_assignment",
		mcp.WithDescription("Add or remove labels on a Gmail message"),
		common.AccountParam(),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("ID of the message to modify"),
		),
		mcp.WithArray("addLabelIds",
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Label IDs to add"),
		),
		mcp.WithArray("removeLabelIds",
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Label IDs to remove"),
		),
	), common.WithHandles(auth, handleLabelAssignment))

	s.Add(mcp.NewTool("get_workspace_gmail_settings",
		mcp.WithDescription("Get Gmail profile information for an account"),
		common.AccountParam(),
	), common.WithHandles(auth, handleSettings))
}

func handleLabel(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	action, err := common.Enum(args, "action", "", labelActions...)
	if err != nil {
		return tools.Failure(err)
	}

	var label *gmail_v1.Label
	var labelID string
	switch action {
	case "create":
		name, err := common.RequireString(args, "name")
		if err != nil {
			return tools.Failure(err)
		}
		label = &gmail_v1.Label{
			Name:                  name,
			LabelListVisibility:   common.StringDefault(args, "labelListVisibility", "labelShow"),
			MessageListVisibility: common.StringDefault(args, "messageListVisibility", "show"),
		}
	case "get", "delete":
		if labelID, err = common.RequireString(args, "labelId"); err != nil {
			return tools.Failure(err)
		}
	}

	svc, err := h.Gmail(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	labels := svc.Users.Labels

	switch action {
	case "create":
		created, err := labels.Create(userID, label).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Label created. ID: " + created.Id)
	case "list":
		list, err := labels.List(userID).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Data(list)
	case "get":
		got, err := labels.Get(userID, labelID).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Data(got)
	default:
		if err := labels.Delete(userID, labelID).Context(ctx).Do(); err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Label deleted")
	}
}

func handleLabelAssignment(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	messageID, err := common.RequireString(args, "messageId")
	if err != nil {
		return tools.Failure(err)
	}
	req := &gmail_v1.ModifyMessageRequest{
		AddLabelIds:    common.StringSlice(args, "addLabelIds"),
		RemoveLabelIds: common.StringSlice(args, "removeLabelIds"),
	}
	if len(req.AddLabelIds) == 0 && len(req.RemoveLabelIds) == 0 {
		return tools.Failure(apperrors.Validation("addLabelIds or removeLabelIds is required"))
	}

	svc, err := h.Gmail(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	if _, err := svc.Users.Messages.Modify(userID, messageID, req).Context(ctx).Do(); err != nil {
		return tools.Failure(err)
	}
	return tools.Text("Labels updated for message " + messageID)
}

// Settings is the output of get_workspace_gmail_settings.
type Settings struct {
	Profile *gmail_v1.Profile `json:"profile"`
}

func handleSettings(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	svc, err := h.Gmail(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	profile, err := svc.Users.GetProfile(userID).Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Data(Settings{Profile: profile})
}
