package gmail_tools

import (
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// userID addresses the authenticated user in every Gmail call.
const userID = "me"

// New returns the Gmail capability.
func New(auth common.Authenticator) *tools.Set {
	s := tools.NewSet(instrumentation.ServiceGmail)
	registerEmailTools(s, auth)
	registerDraftTools(s, auth)
	registerLabelTools(s, auth)
	return s
}
