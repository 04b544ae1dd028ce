package gmail_tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/google/googletest"
)

// fakeGmail answers the Gmail v1 paths used by the capability.
type fakeGmail struct {
	mu       sync.Mutex
	requests []string
	sentRaw  string
	modified map[string]any
}

func (f *fakeGmail) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	const base = "/gmail/v1/users/me/"
	path := strings.TrimPrefix(r.URL.Path, base)
	switch {
	case r.Method == http.MethodGet && path == "messages":
		googletest.JSON(w, http.StatusOK, map[string]any{
			"messages": []map[string]string{{"id": "m1", "threadId": "t1"}, {"id": "m2", "threadId": "t2"}},
		})
	case r.Method == http.MethodGet && strings.HasPrefix(path, "messages/"):
		id := strings.TrimPrefix(path, "messages/")
		if id == "missing" {
			googletest.Error(w, http.StatusNotFound, "Requested entity was not found.")
			return
		}
		googletest.JSON(w, http.StatusOK, map[string]any{
			"id": id, "threadId": "t-" + id, "snippet": "snippet " + id,
			"payload": map[string]any{"headers": []map[string]string{
				{"name": "From", "value": "sender@x.com"},
				{"name": "Subject", "value": "Subject " + id},
			}},
		})
	case r.Method == http.MethodPost && path == "messages/send":
		var body struct{ Raw string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.sentRaw = body.Raw
		f.mu.Unlock()
		googletest.JSON(w, http.StatusOK, map[string]string{"id": "sent-1"})
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/modify"):
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.modified = body
		f.mu.Unlock()
		googletest.JSON(w, http.StatusOK, map[string]string{"id": "m1"})
	case r.Method == http.MethodPost && path == "drafts":
		googletest.JSON(w, http.StatusOK, map[string]string{"id": "d1"})
	case r.Method == http.MethodGet && path == "drafts":
		googletest.JSON(w, http.StatusOK, map[string]any{"drafts": []map[string]string{{"id": "d1"}}, "resultSizeEstimate": 1})
	case r.Method == http.MethodPut && path == "drafts/d1":
		googletest.JSON(w, http.StatusOK, map[string]string{"id": "d1"})
	case r.Method == http.MethodDelete && path == "drafts/d1":
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPost && path == "labels":
		googletest.JSON(w, http.StatusOK, map[string]string{"id": "Label_1"})
	case r.Method == http.MethodGet && path == "labels":
		googletest.JSON(w, http.StatusOK, map[string]any{"labels": []map[string]string{{"id": "INBOX", "name": "INBOX"}}})
	case r.Method == http.MethodDelete && path == "labels/Label_1":
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodGet && path == "profile":
		googletest.JSON(w, http.StatusOK, map[string]any{"emailAddress": googletest.Account, "messagesTotal": 42})
	default:
		googletest.Error(w, http.StatusNotFound, "unexpected "+r.Method+" "+r.URL.Path)
	}
}

func (f *fakeGmail) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func setup(t *testing.T) (*fakeGmail, *googletest.Server) {
	t.Helper()
	fake := &fakeGmail{}
	return fake, googletest.New(t, fake)
}

func call(t *testing.T, srv *googletest.Server, name string, args map[string]any) string {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	if _, ok := args["email"]; !ok {
		args["email"] = googletest.Account
	}
	res := New(srv.Manager).Invoke(context.Background(), name, args)
	require.False(t, res.Failed(), "unexpected failure: %v", res.Err)
	return res.Render()
}

func TestSearchEmails(t *testing.T) {
	fake, srv := setup(t)

	res := New(srv.Manager).Invoke(context.Background(), "search_workspace_emails", map[string]any{
		"email": googletest.Account,
		"query": "is:unread",
	})
	require.False(t, res.Failed(), "unexpected failure: %v", res.Err)

	out := res.Data.(SearchResult)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "is:unread", out.Query)
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "m1", out.Messages[0].ID)
	assert.Equal(t, "sender@x.com", out.Messages[0].From)
	assert.Equal(t, "Subject m2", out.Messages[1].Subject)
	assert.Equal(t, 3, fake.count())
	assert.Zero(t, srv.Refreshes())
}

func TestGmailTools_Validation(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		wantKind apperrors.Kind
		wantText string
	}{
		{name: "search without account", tool: "search_workspace_emails", args: map[string]any{"query": "x"}, wantKind: apperrors.KindValidation, wantText: "Email is required"},
		{name: "search without query", tool: "search_workspace_emails", args: map[string]any{"email": googletest.Account}, wantKind: apperrors.KindValidation, wantText: "query is required"},
		{name: "send without subject", tool: "send_workspace_email", args: map[string]any{"email": googletest.Account, "to": "b@x.com", "body": "x"}, wantKind: apperrors.KindValidation},
		{name: "send without body", tool: "send_workspace_email", args: map[string]any{"email": googletest.Account, "to": "b@x.com", "subject": "s"}, wantKind: apperrors.KindValidation},
		{name: "unknown draft action", tool: "manage_workspace_draft", args: map[string]any{"email": googletest.Account, "action": "archive"}, wantKind: apperrors.KindValidation, wantText: `Invalid action: "archive"`},
		{name: "draft get without id", tool: "manage_workspace_draft", args: map[string]any{"email": googletest.Account, "action": "get"}, wantKind: apperrors.KindValidation},
		{name: "label create without name", tool: "manage_workspace_label", args: map[string]any{"email": googletest.Account, "action": "create"}, wantKind: apperrors.KindValidation},
		{name: "assignment without labels", tool: "manage_workspace_label_assignment", args: map[string]any{"email": googletest.Account, "messageId": "m1"}, wantKind: apperrors.KindValidation},
		{name: "unauthenticated account", tool: "get_workspace_gmail_settings", args: map[string]any{"email": "other@x.com"}, wantKind: apperrors.KindAuthorization, wantText: "Account not authenticated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, srv := setup(t)
			res := New(srv.Manager).Invoke(context.Background(), tt.tool, tt.args)
			require.True(t, res.Failed())
			assert.Equal(t, tt.wantKind, res.Err.Kind())
			if tt.wantText != "" {
				assert.Contains(t, res.Err.Error(), tt.wantText)
			}
			assert.Zero(t, fake.count(), "no Gmail call expected")
		})
	}
}

func TestSendEmail(t *testing.T) {
	fake, srv := setup(t)

	out := call(t, srv, "send_workspace_email", map[string]any{
		"to":      "b@x.com, c@x.com",
		"cc":      []any{"d@x.com"},
		"subject": "Report",
		"body":    "<b>done</b>",
		"isHtml":  true,
	})
	assert.Equal(t, "Email sent successfully. Message ID: sent-1", out)

	raw, err := base64.URLEncoding.DecodeString(fake.sentRaw)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "To: b@x.com, c@x.com")
	assert.Contains(t, string(raw), "Cc: d@x.com")
	assert.Contains(t, string(raw), "text/html")
}

func TestManageDraft(t *testing.T) {
	_, srv := setup(t)
	draft := map[string]any{"to": "b@x.com", "subject": "s", "body": "b"}

	withAction := func(action string, extra map[string]any) map[string]any {
		args := map[string]any{"action": action}
		for k, v := range extra {
			args[k] = v
		}
		return args
	}

	assert.Equal(t, "Draft created. ID: d1", call(t, srv, "manage_workspace_draft", withAction("create", draft)))
	assert.Contains(t, call(t, srv, "manage_workspace_draft", withAction("list", nil)), `"id": "d1"`)

	update := withAction("update", draft)
	update["draftId"] = "d1"
	assert.Equal(t, "Draft updated. ID: d1", call(t, srv, "manage_workspace_draft", update))
	assert.Equal(t, "Draft deleted", call(t, srv, "manage_workspace_draft", withAction("delete", map[string]any{"draftId": "d1"})))
}

func TestManageLabel(t *testing.T) {
	_, srv := setup(t)

	assert.Equal(t, "Label created. ID: Label_1",
		call(t, srv, "manage_workspace_label", map[string]any{"action": "create", "name": "Receipts"}))
	assert.Contains(t, call(t, srv, "manage_workspace_label", map[string]any{"action": "list"}), "INBOX")
	assert.Equal(t, "Label deleted",
		call(t, srv, "manage_workspace_label", map[string]any{"action": "delete", "labelId": "Label_1"}))
}

func TestLabelAssignment(t *testing.T) {
	fake, srv := setup(t)

	out := call(t, srv, "manage_workspace_label_assignment", map[string]any{
		"messageId":   "m1",
		"addLabelIds": []any{"STARRED"},
	})
	assert.Equal(t, "Labels updated for message m1", out)
	assert.Equal(t, []any{"STARRED"}, fake.modified["addLabelIds"])
}

func TestGmailSettings(t *testing.T) {
	_, srv := setup(t)

	out := call(t, srv, "get_workspace_gmail_settings", nil)
	assert.Contains(t, out, `"profile"`)
	assert.Contains(t, out, `"emailAddress": "a@x.com"`)
}

func TestManageDraft_UpstreamNotFound(t *testing.T) {
	_, srv := setup(t)
	res := New(srv.Manager).Invoke(context.Background(), "manage_workspace_draft", map[string]any{
		"email": googletest.Account, "action": "get", "draftId": "nope",
	})
	require.True(t, res.Failed())
	assert.Equal(t, apperrors.KindNotFound, res.Err.Kind())
}
