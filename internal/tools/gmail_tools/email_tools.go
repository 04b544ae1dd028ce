package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	gmail_v1 "google.golang.org/api/gmail/v1"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/gmail"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// SearchResult is the output of search_workspace_emails.
type SearchResult struct {
	Messages []gmail.Summary `json:"messages"`
	Total    int             `json:"total"`
	Query    string          `json:"query"`
}

func registerEmailTools(s *tools.Set, auth common.Authenticator) {
	s.Add(mcp.NewTool("search_workspace_emails",
		mcp.WithDescription("Search emails in a Google Workspace account"),
		common.AccountParam(),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query (e.g., 'is:unread', 'from:user@example.com')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
		mcp.WithBoolean("includeSpamTrash",
			mcp.Description("Include messages from SPAM and TRASH (default: false)"),
		),
	), common.WithHandles(auth, handleSearch))

	s.Add(mcp.NewTool("send_workspace_email",
		mcp.WithDescription("Send an email from a Google Workspace account"),
		common.AccountParam(),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Email body content"),
		),
		mcp.WithString("cc",
			mcp.Description("CC recipients, comma-separated"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC recipients, comma-separated"),
		),
		mcp.WithBoolean("isHtml",
			mcp.Description("Send the body as HTML (default: false)"),
		),
	), common.WithHandles(auth, handleSend))
}

func handleSearch(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	query, err := common.RequireString(args, "query")
	if err != nil {
		return tools.Failure(err)
	}
	maxResults := common.Int(args, "maxResults", 10)

	svc, err := h.Gmail(ctx)
	if err != nil {
		return tools.Failure(err)
	}

	list, err := svc.Users.Messages.List(userID).
		Q(query).
		MaxResults(maxResults).
		IncludeSpamTrash(common.Bool(args, "includeSpamTrash", false)).
		Context(ctx).
		Do()
	if err != nil {
		return tools.Failure(err)
	}

	result := SearchResult{
		Messages: make([]gmail.Summary, 0, len(list.Messages)),
		Total:    len(list.Messages),
		Query:    query,
	}
	for i, m := range list.Messages {
		if int64(i) >= maxResults {
			break
		}
		detail, err := svc.Users.Messages.Get(userID, m.Id).
			Format("metadata").
			MetadataHeaders(gmail.SummaryHeaders...).
			Context(ctx).
			Do()
		if err != nil {
			return tools.Failure(err)
		}
		result.Messages = append(result.Messages, gmail.Summarize(detail))
	}
	return tools.Data(result)
}

func handleSend(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	msg, err := messageFromArgs(args, true)
	if err != nil {
		return tools.Failure(err)
	}
	msg.Cc = common.StringSlice(args, "cc")
	msg.Bcc = common.StringSlice(args, "bcc")
	msg.IsHTML = common.Bool(args, "isHtml", false)

	raw, err := msg.Raw()
	if err != nil {
		return tools.Failure(apperrors.Validation("%s", err.Error()))
	}

	svc, err := h.Gmail(ctx)
	if err != nil {
		return tools.Failure(err)
	}
	sent, err := svc.Users.Messages.Send(userID, &gmail_v1.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Text("Email sent successfully. Message ID: " + sent.Id)
}

// messageFromArgs reads to, subject and body. With requireBody an empty
// body is rejected.
func messageFromArgs(args map[string]any, requireBody bool) (*gmail.EmailMessage, error) {
	to := common.StringSlice(args, "to")
	if len(to) == 0 {
		return nil, apperrors.Validation("to is required")
	}
	subject, err := common.RequireString(args, "subject")
	if err != nil {
		return nil, err
	}
	body := common.String(args, "body")
	if requireBody && body == "" {
		return nil, apperrors.Validation("body is required")
	}
	return &gmail.EmailMessage{To: to, Subject: subject, Body: body}, nil
}
