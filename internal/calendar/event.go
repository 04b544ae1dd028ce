package calendar

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	calendar "google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

// ResponseStatuses are the replies an attendee can give.
var ResponseStatuses = []string{"accepted", "declined", "tentative"}

// ErrNotAttendee is returned by Respond when the account is not invited.
var ErrNotAttendee = errors.New("account is not an attendee of this event")

// ParseEventTime accepts an RFC 3339 timestamp, a YYYY-MM-DD date for
// all-day events, or an object in the Calendar API's dateTime/date/timeZone
// shape.
func ParseEventTime(v any) (*calendar.EventDateTime, error) {
	switch t := v.(type) {
	case nil:
		return nil, errors.New("time is required")
	case string:
		return parseTimeString(strings.TrimSpace(t))
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, errors.Wrap(err, "invalid time")
		}
		var edt calendar.EventDateTime
		if err := json.Unmarshal(b, &edt); err != nil {
			return nil, errors.Wrap(err, "invalid time")
		}
		if edt.DateTime == "" && edt.Date == "" {
			return nil, errors.New("time needs dateTime or date")
		}
		if edt.DateTime != "" {
			if _, err := time.Parse(time.RFC3339, edt.DateTime); err != nil {
				return nil, errors.Wrapf(err, "invalid dateTime %q", edt.DateTime)
			}
		}
		return &edt, nil
	default:
		return nil, errors.Errorf("unsupported time value %T", v)
	}
}

func parseTimeString(s string) (*calendar.EventDateTime, error) {
	if s == "" {
		return nil, errors.New("time is required")
	}
	if _, err := time.Parse(dateLayout, s); err == nil {
		return &calendar.EventDateTime{Date: s}, nil
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return nil, errors.Errorf("invalid time %q: use RFC 3339 or YYYY-MM-DD", s)
	}
	return &calendar.EventDateTime{DateTime: s}, nil
}

// ParseAttendees accepts a comma-separated string, a list of addresses, or
// a list of attendee objects.
func ParseAttendees(v any) ([]*calendar.EventAttendee, error) {
	var out []*calendar.EventAttendee
	add := func(email string) {
		if email = strings.TrimSpace(email); email != "" {
			out = append(out, &calendar.EventAttendee{Email: email})
		}
	}

	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		for _, e := range strings.Split(t, ",") {
			add(e)
		}
	case []string:
		for _, e := range t {
			add(e)
		}
	case []any:
		for _, item := range t {
			switch a := item.(type) {
			case string:
				add(a)
			case map[string]any:
				b, err := json.Marshal(a)
				if err != nil {
					return nil, errors.Wrap(err, "invalid attendee")
				}
				var att calendar.EventAttendee
				if err := json.Unmarshal(b, &att); err != nil {
					return nil, errors.Wrap(err, "invalid attendee")
				}
				if att.Email == "" {
					return nil, errors.New("attendee email is required")
				}
				out = append(out, &att)
			default:
				return nil, errors.Errorf("unsupported attendee value %T", item)
			}
		}
	default:
		return nil, errors.Errorf("unsupported attendees value %T", v)
	}
	return out, nil
}

// Respond sets the response status of the attendee matching email. The
// match ignores case.
func Respond(event *calendar.Event, email, status string) error {
	for _, att := range event.Attendees {
		if strings.EqualFold(att.Email, email) {
			att.ResponseStatus = status
			return nil
		}
	}
	return ErrNotAttendee
}

// Patch holds the fields of an update. Nil and empty fields are left alone.
type Patch struct {
	Summary     string
	Description string
	Location    string
	Start       *calendar.EventDateTime
	End         *calendar.EventDateTime
	Attendees   []*calendar.EventAttendee
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Summary == "" && p.Description == "" && p.Location == "" &&
		p.Start == nil && p.End == nil && len(p.Attendees) == 0
}

// Apply copies the set fields onto event.
func (p Patch) Apply(event *calendar.Event) {
	if p.Summary != "" {
		event.Summary = p.Summary
	}
	if p.Description != "" {
		event.Description = p.Description
	}
	if p.Location != "" {
		event.Location = p.Location
	}
	if p.Start != nil {
		event.Start = p.Start
	}
	if p.End != nil {
		event.End = p.End
	}
	if len(p.Attendees) > 0 {
		event.Attendees = p.Attendees
	}
}

// CheckRange rejects an event whose end is not after its start. Mixed
// all-day and timed values are left to the API.
func CheckRange(start, end *calendar.EventDateTime) error {
	if start == nil || end == nil {
		return nil
	}
	switch {
	case start.DateTime != "" && end.DateTime != "":
		s, _ := time.Parse(time.RFC3339, start.DateTime)
		e, _ := time.Parse(time.RFC3339, end.DateTime)
		if !e.After(s) {
			return errors.New("end must be after start")
		}
	case start.Date != "" && end.Date != "":
		if end.Date <= start.Date {
			return errors.New("end must be after start")
		}
	}
	return nil
}
