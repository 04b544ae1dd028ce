package calendar_tools

import (
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

const defaultCalendarID = "primary"

// New returns the Calendar capability.
func New(auth common.Authenticator) *tools.Set {
	s := tools.NewSet(instrumentation.ServiceCalendar)
	registerEventTools(s, auth)
	registerManageTools(s, auth)
	return s
}
