package gmail

import (
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// SummaryHeaders are requested with format=metadata for search results.
var SummaryHeaders = []string{"From", "To", "Subject", "Date"}

// Summary is the flattened view of a message returned by search.
type Summary struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	Snippet  string   `json:"snippet"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Subject  string   `json:"subject"`
	Date     string   `json:"date"`
	LabelIDs []string `json:"labelIds,omitempty"`
}

// HeaderValue returns the first header named header, matched case-insensitively.
func HeaderValue(m *gmail.Message, header string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if strings.EqualFold(h.Name, header) {
			return h.Value
		}
	}
	return ""
}

// Summarize flattens m into a Summary.
func Summarize(m *gmail.Message) Summary {
	return Summary{
		ID:       m.Id,
		ThreadID: m.ThreadId,
		Snippet:  m.Snippet,
		From:     HeaderValue(m, "From"),
		To:       HeaderValue(m, "To"),
		Subject:  HeaderValue(m, "Subject"),
		Date:     HeaderValue(m, "Date"),
		LabelIDs: m.LabelIds,
	}
}
