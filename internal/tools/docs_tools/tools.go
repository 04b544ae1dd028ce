package docs_tools

import (
	"context"

	docs_v1 "google.golang.org/api/docs/v1"
	drive_v3 "google.golang.org/api/drive/v3"

	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// New returns the Docs capability.
func New(auth common.Authenticator) *tools.Set {
	s := tools.NewSet(instrumentation.ServiceDocs)
	registerDocumentTools(s, auth)
	registerEditTools(s, auth)
	return s
}

type services struct {
	docs  *docs_v1.Service
	drive *drive_v3.Service
}

type serviceFunc func(ctx context.Context, svc services, args map[string]any) *tools.Result

// withServices mints both handles before running fn.
func withServices(auth common.Authenticator, fn serviceFunc) tools.HandlerFunc {
	return common.WithHandles(auth, func(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
		d, err := h.Docs(ctx)
		if err != nil {
			return tools.Failure(err)
		}
		dr, err := h.Drive(ctx)
		if err != nil {
			return tools.Failure(err)
		}
		return fn(ctx, services{docs: d, drive: dr}, args)
	})
}
