package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	calendar_v3 "google.golang.org/api/calendar/v3"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/calendar"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// EventList is the output of list_workspace_calendar_events.
type EventList struct {
	Events     []*calendar_v3.Event `json:"events"`
	Total      int                  `json:"total"`
	CalendarID string               `json:"calendarId"`
}

func calendarIDParam() mcp.ToolOption {
	return mcp.WithString("calendarId",
		mcp.Description("Calendar ID (default: primary)"),
	)
}

func registerEventTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("list_workspace_calendar_events",
		mcp.WithDescription("List events from a Google Calendar"),
		common.AccountParam(),
		calendarIDParam(),
		mcp.WithString("timeMin",
			mcp.Description("Lower bound (RFC 3339) for an event's end time"),
		),
		mcp.WithString("timeMax",
			mcp.Description("Upper bound (RFC 3339) for an event's start time"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of events to return (default: 10)"),
		),
		mcp.WithBoolean("singleEvents",
			mcp.Description("Expand recurring events into instances (default: true)"),
		),
		mcp.WithString("orderBy",
			mcp.Enum("startTime", "updated"),
			mcp.Description("Sort order (default: startTime)"),
		),
		mcp.WithString("q",
			mcp.Description("Free text search terms"),
		),
	), common.WithHandles(auth, handleList))

	s.Add(mcp.NewTool("get_workspace_calendar_event",
		mcp.WithDescription("Get a single calendar event"),
		common.AccountParam(),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("Event ID"),
		),
		calendarIDParam(),
	), common.WithHandles(auth, handleGet))

	s.Add(mcp.NewTool("create_workspace_calendar_event",
		mcp.WithDescription("Create a calendar event"),
		common.AccountParam(),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithObject("start",
			mcp.Required(),
			mcp.Description("Start as an RFC 3339 string, a YYYY-MM-DD date, or {dateTime|date, timeZone}"),
		),
		mcp.WithObject("end",
			mcp.Required(),
			mcp.Description("End as an RFC 3339 string, a YYYY-MM-DD date, or {dateTime|date, timeZone}"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithArray("attendees",
			mcp.Description("Attendee email addresses or {email, optional} objects"),
		),
		mcp.WithObject("reminders",
			mcp.Description("Reminder settings: {useDefault, overrides:[{method, minutes}]}"),
		),
		calendarIDParam(),
	), common.WithHandles(auth, handleCreate))
}

func handleList(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	calendarID := common.StringDefault(args, "calendarId", defaultCalendarID)
	orderBy, err := common.Enum(args, "orderBy", "startTime", "startTime", "updated")
	if err != nil {
		return tools.Failure(err)
	}
	singleEvents := common.Bool(args, "singleEvents", true)
	if orderBy == "startTime" && !singleEvents {
		return tools.Failure(apperrors.Validation("orderBy=startTime requires singleEvents=true"))
	}

	svc, err := h.Calendar(ctx)
	if err != nil {
		return tools.Failure(err)
	}

	call := svc.Events.List(calendarID).
		MaxResults(common.Int(args, "maxResults", 10)).
		SingleEvents(singleEvents).
		OrderBy(orderBy).
		Context(ctx)
	if v := common.String(args, "timeMin"); v != "" {
		call = call.TimeMin(v)
	}
	if v := common.String(args, "timeMax"); v != "" {
		call = call.TimeMax(v)
	}
	if v := common.String(args, "q"); v != "" {
		call = call.Q(v)
	}

	events, err := call.Do()
	if err != nil {
		return tools.Failure(err)
	}
	items := events.Items
	if items == nil {
		items = []*calendar_v3.Event{}
	}
	return tools.Data(EventList{Events: items, Total: len(items), CalendarID: calendarID})
}

func handleGet(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	eventID, err := common.RequireString(args, "eventId")
	if err != nil {
		return tools.Failure(err)
	}
	svc, err := h.Calendar(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	event, err := svc.Events.Get(common.StringDefault(args, "calendarId", defaultCalendarID), eventID).Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Data(event)
}

func handleCreate(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	summary, err := common.RequireString(args, "summary")
	if err != nil {
		return tools.Failure(err)
	}
	start, err := eventTime(args, "start", true)
	if err != nil {
		return tools.Failure(err)
	}
	end, err := eventTime(args, "end", true)
	if err != nil {
		return tools.Failure(err)
	}
	if err := calendar.CheckRange(start, end); err != nil {
		return tools.Failure(apperrors.Validation("%s", err.Error()))
	}
	attendees, err := calendar.ParseAttendees(args["attendees"])
	if err != nil {
		return tools.Failure(apperrors.Validation("%s", err.Error()))
	}

	event := &calendar_v3.Event{
		Summary:     summary,
		Description: common.String(args, "description"),
		Location:    common.String(args, "location"),
		Start:       start,
		End:         end,
		Attendees:   attendees,
	}
	if common.Has(args, "reminders") {
		var reminders calendar_v3.EventReminders
		if err := common.Decode(args, "reminders", &reminders); err != nil {
			return tools.Failure(err)
		}
		// useDefault=false must reach the API for overrides to apply.
		reminders.ForceSendFields = []string{"UseDefault"}
		event.Reminders = &reminders
	}

	svc, err := h.Calendar(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	created, err := svc.Events.Insert(common.StringDefault(args, "calendarId", defaultCalendarID), event).Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Text("Event created. ID: " + created.Id)
}

// eventTime parses args[key]. A missing optional key yields nil.
func eventTime(args map[string]any, key string, required bool) (*calendar_v3.EventDateTime, error) {
	if !common.Has(args, key) {
		if required {
			return nil, apperrors.Validation("%s is required", key)
		}
		return nil, nil
	}
	t, err := calendar.ParseEventTime(args[key])
	if err != nil {
		return nil, apperrors.Validation("invalid %s: %v", key, err)
	}
	return t, nil
}
