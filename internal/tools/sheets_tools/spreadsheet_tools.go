package sheets_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	sheets_v4 "google.golang.org/api/sheets/v4"

	"github.com/chaitanya2108/Google-Workspace/internal/drive"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

func spreadsheetURL(id string) string {
	return "https://docs.google.com/spreadsheets/d/" + id + "/edit"
}

func registerSpreadsheetTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("create_workspace_spreadsheet",
		mcp.WithDescription("Create a new Google Spreadsheet"),
		common.AccountParam(),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Spreadsheet title"),
		),
		mcp.WithString("parentFolderId",
			mcp.Description("Drive folder to place the spreadsheet in"),
		),
	), withServices(auth, handleCreate))
}

func handleCreate(ctx context.Context, svc services, args map[string]any) *tools.Result {
	title, err := common.RequireString(args, "title")
	if err != nil {
		return tools.Failure(err)
	}
	created, err := svc.sheets.Spreadsheets.Create(&sheets_v4.Spreadsheet{
		Properties: &sheets_v4.SpreadsheetProperties{Title: title},
	}).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	if folder := common.String(args, "parentFolderId"); folder != "" {
		if err := drive.MoveToFolder(ctx, svc.drive, created.SpreadsheetId, folder); err != nil {
			return tools.Failure(err)
		}
	}
	return tools.Text(fmt.Sprintf("Spreadsheet created successfully!\n\nSpreadsheet ID: %s\nTitle: %s\nURL: %s",
		created.SpreadsheetId, title, spreadsheetURL(created.SpreadsheetId)))
}
