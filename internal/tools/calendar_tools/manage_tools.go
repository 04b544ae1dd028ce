package calendar_tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/calendar"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

var sendUpdatesOptions = []string{"all", "externalOnly", "none"}

func registerManageTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("manage_workspace_calendar_event",
		mcp.WithDescription("Update a calendar event or respond to an invitation"),
		common.AccountParam(),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("Event ID"),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Enum("update", "respond"),
			mcp.Description("Operation to perform"),
		),
		mcp.WithString("responseStatus",
			mcp.Enum(calendar.ResponseStatuses...),
			mcp.Description("Reply to send (required for respond)"),
		),
		mcp.WithString("summary", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("location", mcp.Description("New location")),
		mcp.WithObject("start", mcp.Description("New start")),
		mcp.WithObject("end", mcp.Description("New end")),
		mcp.WithArray("attendees", mcp.Description("Replacement attendee list")),
		calendarIDParam(),
	), common.WithHandles(auth, handleManage))

	s.Add(mcp.NewTool("delete_workspace_calendar_event",
		mcp.WithDescription("Delete a calendar event"),
		common.AccountParam(),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("Event ID"),
		),
		mcp.WithString("sendUpdates",
			mcp.Enum(sendUpdatesOptions...),
			mcp.Description("Who is notified of the cancellation (default: all)"),
		),
		calendarIDParam(),
	), common.WithHandles(auth, handleDelete))
}

func handleManage(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	eventID, err := common.RequireString(args, "eventId")
	if err != nil {
		return tools.Failure(err)
	}
	action, err := common.Enum(args, "action", "", "update", "respond")
	if err != nil {
		return tools.Failure(err)
	}

	var (
		status string
		patch  calendar.Patch
	)
	switch action {
	case "respond":
		if status, err = common.Enum(args, "responseStatus", "", calendar.ResponseStatuses...); err != nil {
			return tools.Failure(err)
		}
	case "update":
		if patch, err = patchFromArgs(args); err != nil {
			return tools.Failure(err)
		}
		if patch.Empty() {
			return tools.Failure(apperrors.Validation("nothing to update"))
		}
	}

	svc, err := h.Calendar(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	calendarID := common.StringDefault(args, "calendarId", defaultCalendarID)

	event, err := svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}

	if action == "respond" {
		if err := calendar.Respond(event, h.Account(), status); err != nil {
			if errors.Is(err, calendar.ErrNotAttendee) {
				return tools.Failure(apperrors.Validation("%s is not an attendee of event %s", h.Account(), eventID))
			}
			return tools.Failure(err)
		}
	} else {
		patch.Apply(event)
		if err := calendar.CheckRange(event.Start, event.End); err != nil {
			return tools.Failure(apperrors.Validation("%s", err.Error()))
		}
	}

	updated, err := svc.Events.Update(calendarID, eventID, event).Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	if action == "respond" {
		return tools.Text("Responded: " + status)
	}
	return tools.Text("Event updated. ID: " + updated.Id)
}

func patchFromArgs(args map[string]any) (calendar.Patch, error) {
	p := calendar.Patch{
		Summary:     common.String(args, "summary"),
		Description: common.String(args, "description"),
		Location:    common.String(args, "location"),
	}
	var err error
	if p.Start, err = eventTime(args, "start", false); err != nil {
		return p, err
	}
	if p.End, err = eventTime(args, "end", false); err != nil {
		return p, err
	}
	if p.Attendees, err = calendar.ParseAttendees(args["attendees"]); err != nil {
		return p, apperrors.Validation("%s", err.Error())
	}
	return p, nil
}

func handleDelete(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	eventID, err := common.RequireString(args, "eventId")
	if err != nil {
		return tools.Failure(err)
	}
	sendUpdates, err := common.Enum(args, "sendUpdates", "all", sendUpdatesOptions...)
	if err != nil {
		return tools.Failure(err)
	}

	svc, err := h.Calendar(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	err = svc.Events.Delete(common.StringDefault(args, "calendarId", defaultCalendarID), eventID).
		SendUpdates(sendUpdates).
		Context(ctx).
		Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Text("Event deleted")
}
