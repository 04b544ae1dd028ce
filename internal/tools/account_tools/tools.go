package account_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// Accounts is the slice of the auth manager these tools use.
type Accounts interface {
	ListAccounts() ([]google.Account, error)
	BeginAuthorization(ctx context.Context, hint string) (*google.AuthorizationRequest, error)
	RemoveAccount(ctx context.Context, email string) error
}

// AccountList is the output of list_workspace_accounts.
type AccountList struct {
	Accounts []google.Account `json:"accounts"`
	Total    int              `json:"total"`
}

// Authorization is the output of authenticate_workspace_account.
type Authorization struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// New returns the account capability.
func New(accounts Accounts) *tools.Set {
	s := tools.NewSet(instrumentation.ServiceAccount)

	s.Add(mcp.NewTool("list_workspace_accounts",
		mcp.WithDescription("List all configured Google Workspace accounts and their authentication status"),
	), func(ctx context.Context, args map[string]any) *tools.Result {
		list, err := accounts.ListAccounts()
		if err != nil {
			return tools.Failure(err)
		}
		return tools.Data(AccountList{Accounts: list, Total: len(list)})
	})

	s.Add(mcp.NewTool("authenticate_workspace_account",
		mcp.WithDescription("Add and authenticate a new Google Workspace account"),
		mcp.WithString("email",
			mcp.Description("Email address of the account to authenticate (optional, will be determined from OAuth)"),
		),
	), func(ctx context.Context, args map[string]any) *tools.Result {
		req, err := accounts.BeginAuthorization(ctx, common.GetAccountFromArgs(args))
		if err != nil {
			return tools.Failure(apperrors.Wrap(apperrors.KindInternal, err, "Failed to generate auth URL: "+err.Error()))
		}
		msg := fmt.Sprintf("Please visit this URL to authenticate:\n\n%s\n\n"+
			"After clicking 'Allow' on the Google authorization page, the authentication will complete automatically.", req.URL)
		return &tools.Result{
			Data:    Authorization{AuthURL: req.URL, State: req.State, Message: msg},
			Message: msg,
		}
	})

	s.Add(mcp.NewTool("remove_workspace_account",
		mcp.WithDescription("Remove a Google Workspace account and its associated tokens"),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address of the account to remove"),
		),
	), func(ctx context.Context, args map[string]any) *tools.Result {
		email := common.GetAccountFromArgs(args)
		if email == "" {
			return tools.Failure(apperrors.ErrAccountRequired)
		}
		if err := accounts.RemoveAccount(ctx, email); err != nil {
			return tools.Failure(err)
		}
		return tools.Text("Successfully removed account: " + email)
	})

	return s
}
