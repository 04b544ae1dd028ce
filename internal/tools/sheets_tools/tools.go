package sheets_tools

import (
	"context"

	drive_v3 "google.golang.org/api/drive/v3"
	sheets_v4 "google.golang.org/api/sheets/v4"

	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

var (
	majorDimensions    = []string{"ROWS", "COLUMNS"}
	valueRenderOptions = []string{"FORMATTED_VALUE", "UNFORMATTED_VALUE", "FORMULA"}
	valueInputOptions  = []string{"RAW", "USER_ENTERED"}
	insertDataOptions  = []string{"OVERWRITE", "INSERT_ROWS"}
)

// New returns the Sheets capability.
func New(auth common.Authenticator) *tools.Set {
	s := tools.NewSet(instrumentation.ServiceSheets)
	registerSpreadsheetTools(s, auth)
	registerValueTools(s, auth)
	return s
}

type services struct {
	sheets *sheets_v4.Service
	drive  *drive_v3.Service
}

type serviceFunc func(ctx context.Context, svc services, args map[string]any) *tools.Result

func withServices(auth common.Authenticator, fn serviceFunc) tools.HandlerFunc {
	return common.WithHandles(auth, func(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
		sh, err := h.Sheets(ctx)
		if err != nil {
			return tools.Failure(err)
		}
		dr, err := h.Drive(ctx)
		if err != nil {
			return tools.Failure(err)
		}
		return fn(ctx, services{sheets: sh, drive: dr}, args)
	})
}

// optionalEnum validates args[key] only when present.
func optionalEnum(args map[string]any, key string, allowed ...string) (string, error) {
	if common.String(args, key) == "" {
		return "", nil
	}
	return common.Enum(args, key, "", allowed...)
}
