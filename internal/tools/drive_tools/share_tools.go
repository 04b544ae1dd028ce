package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	drive_v3 "google.golang.org/api/drive/v3"

	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

var (
	permissionActions = []string{"add", "remove", "update", "list"}
	permissionRoles   = []string{"owner", "organizer", "fileOrganizer", "writer", "commenter", "reader"}
	permissionTypes   = []string{"user", "group", "domain", "anyone"}
)

func registerShareTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("update_drive_permissions",
		mcp.WithDescription("List, add, update or remove sharing permissions on a Drive file"),
		common.AccountParam(),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("ID of the file"),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Enum(permissionActions...),
			mcp.Description("Operation to perform"),
		),
		mcp.WithString("permissionId",
			mcp.Description("Permission ID (required for remove and update)"),
		),
		mcp.WithString("role",
			mcp.Enum(permissionRoles...),
			mcp.Description("Role to grant (required for add and update)"),
		),
		mcp.WithString("type",
			mcp.Enum(permissionTypes...),
			mcp.Description("Grantee type (required for add)"),
		),
		mcp.WithString("emailAddress",
			mcp.Description("Grantee address for user and group permissions"),
		),
		mcp.WithString("domain",
			mcp.Description("Grantee domain for domain permissions"),
		),
		mcp.WithBoolean("allowFileDiscovery",
			mcp.Description("Whether the file can be found through search (domain and anyone only)"),
		),
	), common.WithHandles(auth, handlePermissions))
}

func handlePermissions(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	fileID, err := common.RequireString(args, "fileId")
	if err != nil {
		return tools.Failure(err)
	}
	action, err := common.Enum(args, "action", "", permissionActions...)
	if err != nil {
		return tools.Failure(err)
	}

	var (
		perm         *drive_v3.Permission
		permissionID string
	)
	switch action {
	case "add":
		role, err := common.Enum(args, "role", "", permissionRoles...)
		if err != nil {
			return tools.Failure(err)
		}
		typ, err := common.Enum(args, "type", "", permissionTypes...)
		if err != nil {
			return tools.Failure(err)
		}
		perm = &drive_v3.Permission{
			Role:         role,
			Type:         typ,
			EmailAddress: common.String(args, "emailAddress"),
			Domain:       common.String(args, "domain"),
		}
	case "update":
		role, err := common.Enum(args, "role", "", permissionRoles...)
		if err != nil {
			return tools.Failure(err)
		}
		perm = &drive_v3.Permission{Role: role}
	}
	if action == "remove" || action == "update" {
		if permissionID, err = common.RequireString(args, "permissionId"); err != nil {
			return tools.Failure(err)
		}
	}
	if perm != nil && common.Has(args, "allowFileDiscovery") {
		perm.AllowFileDiscovery = common.Bool(args, "allowFileDiscovery", false)
		perm.ForceSendFields = []string{"AllowFileDiscovery"}
	}

	svc, err := h.Drive(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	perms := svc.Permissions

	switch action {
	case "list":
		list, err := perms.List(fileID).
			Fields("permissions(id, type, role, emailAddress, domain, allowFileDiscovery)").
			Context(ctx).
			Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Data(list)
	case "add":
		created, err := perms.Create(fileID, perm).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Permission added successfully. Permission ID: " + created.Id)
	case "update":
		updated, err := perms.Update(fileID, permissionID, perm).Context(ctx).Do()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Permission updated successfully. Permission ID: " + updated.Id)
	default:
		if err := perms.Delete(fileID, permissionID).Context(ctx).Do(); err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Permission removed successfully.")
	}
}
