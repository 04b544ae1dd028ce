package contacts_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	people "google.golang.org/api/people/v1"

	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

const (
	defaultReadMask = "names,emailAddresses,phoneNumbers,addresses,organizations,photos"
	defaultPageSize = 10
	// searchContacts rejects page sizes above 30.
	maxSearchPageSize = 30
)

// ContactList is the output of get_workspace_contacts.
type ContactList struct {
	Contacts      []Contact `json:"contacts"`
	Total         int       `json:"total"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
}

// New returns the Contacts capability.
func New(auth common.Authenticator) *tools.Set {
	s := tools.NewSet(instrumentation.ServiceContacts)
	s.Add(mcp.NewTool("get_workspace_contacts",
		mcp.WithDescription("List or search Google Contacts"),
		common.AccountParam(),
		mcp.WithNumber("pageSize",
			mcp.Description("Number of contacts to return (default: 10, at most 30 when searching)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token for the next page"),
		),
		mcp.WithString("query",
			mcp.Description("Search by name, email or phone; lists all connections when empty"),
		),
		mcp.WithString("sortOrder",
			mcp.Enum("LAST_MODIFIED_ASCENDING", "LAST_MODIFIED_DESCENDING", "FIRST_NAME_ASCENDING", "LAST_NAME_ASCENDING"),
			mcp.Description("Sort order for listing"),
		),
		mcp.WithString("readMask",
			mcp.Description("Person fields to return (default: "+defaultReadMask+")"),
		),
	), common.WithHandles(auth, handleContacts))
	return s
}

func handleContacts(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
	readMask := common.StringDefault(args, "readMask", defaultReadMask)
	pageSize := common.Int(args, "pageSize", defaultPageSize)
	query := common.String(args, "query")

	var sortOrder string
	if common.Has(args, "sortOrder") {
		var err error
		sortOrder, err = common.Enum(args, "sortOrder", "",
			"LAST_MODIFIED_ASCENDING", "LAST_MODIFIED_DESCENDING", "FIRST_NAME_ASCENDING", "LAST_NAME_ASCENDING")
		if err != nil {
			return tools.Failure(err)
		}
	}

	svc, err := h.People(ctx)
	if err != nil {
		return tools.Failure(err)
	}

	var (
		persons []*people.Person
		next    string
	)
	if query != "" {
		resp, err := svc.People.SearchContacts().
			Query(query).
			ReadMask(readMask).
			PageSize(min(pageSize, maxSearchPageSize)).
			Context(ctx).
			Do()
		if err != nil {
			return tools.Failure(err)
		}
		for _, r := range resp.Results {
			if r.Person != nil {
				persons = append(persons, r.Person)
			}
		}
	} else {
		call := svc.People.Connections.List("people/me").
			PersonFields(readMask).
			PageSize(pageSize).
			Context(ctx)
		if v := common.String(args, "pageToken"); v != "" {
			call = call.PageToken(v)
		}
		if sortOrder != "" {
			call = call.SortOrder(sortOrder)
		}
		resp, err := call.Do()
		if err != nil {
			return tools.Failure(err)
		}
		persons, next = resp.Connections, resp.NextPageToken
	}

	out := ContactList{Contacts: make([]Contact, 0, len(persons)), NextPageToken: next}
	for _, p := range persons {
		out.Contacts = append(out.Contacts, Flatten(p))
	}
	out.Total = len(out.Contacts)
	return tools.Data(out)
}
