package drive_tools

import (
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// New returns the Drive capability. workspaceDir is the root for
// per-account download directories.
func New(auth common.Authenticator, workspaceDir string) *tools.Set {
	s := tools.NewSet(instrumentation.ServiceDrive)
	registerFileTools(s, auth)
	registerTransferTools(s, auth, workspaceDir)
	registerShareTools(s, auth)
	return s
}
