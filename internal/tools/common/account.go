package common

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

// AccountArg is the argument every operation uses for the account identity.
const AccountArg = "email"

// Authenticator mints per-request API handles for an account.
type Authenticator interface {
	Handles(ctx context.Context, email string) (*google.Handles, error)
}

// AuthenticatedFunc runs an operation with handles for the caller's account.
type AuthenticatedFunc func(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result

// AccountParam is the required account argument shared by every
// Google-backed operation.
func AccountParam() mcp.ToolOption {
	return mcp.WithString(AccountArg,
		mcp.Required(),
		mcp.Description("Email address of the Google Workspace account"),
	)
}

// GetAccountFromArgs returns the trimmed account identity, or "".
func GetAccountFromArgs(args map[string]any) string {
	v, _ := args[AccountArg].(string)
	return strings.TrimSpace(v)
}

// WithHandles resolves the account and its handles before calling fn. A
// missing account or a missing credential becomes a failed result without
// any Google call.
func WithHandles(auth Authenticator, fn AuthenticatedFunc) tools.HandlerFunc {
	return func(ctx context.Context, args map[string]any) *tools.Result {
		email := GetAccountFromArgs(args)
		if email == "" {
			return tools.Failure(apperrors.ErrAccountRequired)
		}
		h, err := auth.Handles(ctx, email)
		if err != nil {
			return tools.Failure(err)
		}
		return fn(ctx, h, args)
	}
}
