package contacts_tools

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	people "google.golang.org/api/people/v1"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/google/googletest"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name      string
		person    *people.Person
		wantName  string
		wantPhoto string
	}{
		{
			name: "primary entries win",
			person: &people.Person{
				Names: []*people.Name{
					{DisplayName: "Nick"},
					{DisplayName: "Nicola Rossi", GivenName: "Nicola", Metadata: &people.FieldMetadata{Primary: true}},
				},
				Photos: []*people.Photo{
					{Url: "https://p/1"},
					{Url: "https://p/2", Metadata: &people.FieldMetadata{Primary: true}},
				},
			},
			wantName:  "Nicola Rossi",
			wantPhoto: "https://p/2",
		},
		{
			name: "first entry without primary flag",
			person: &people.Person{
				Names:  []*people.Name{{DisplayName: "First"}, {DisplayName: "Second"}},
				Photos: []*people.Photo{{Url: "https://p/a", Default: true}},
			},
			wantName:  "First",
			wantPhoto: "https://p/a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Flatten(tt.person)
			require.NotNil(t, c.Name)
			assert.Equal(t, tt.wantName, c.Name.DisplayName)
			require.NotNil(t, c.Photo)
			assert.Equal(t, tt.wantPhoto, c.Photo.URL)
		})
	}

	empty := Flatten(&people.Person{ResourceName: "people/c1"})
	assert.Equal(t, "people/c1", empty.ResourceName)
	assert.Nil(t, empty.Name)
	assert.Nil(t, empty.Photo)
	assert.Empty(t, empty.Emails)
}

func TestFlatten_ListEntries(t *testing.T) {
	c := Flatten(&people.Person{
		EmailAddresses: []*people.EmailAddress{
			{Value: "home@x.com", Type: "home"},
			{Value: "work@x.com", Type: "work", Metadata: &people.FieldMetadata{Primary: true}},
		},
		PhoneNumbers:  []*people.PhoneNumber{{Value: "+1 555", Type: "mobile"}},
		Organizations: []*people.Organization{{Name: "Acme", Title: "Engineer"}},
	})
	require.Len(t, c.Emails, 2)
	assert.False(t, c.Emails[0].Primary)
	assert.True(t, c.Emails[1].Primary)
	assert.Equal(t, "mobile", c.Phones[0].Type)
	assert.Equal(t, "Acme", c.Organizations[0].Name)
}

func TestGetContacts(t *testing.T) {
	var seen url.Values
	var path string
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, seen = r.URL.Path, r.URL.Query()
		switch r.URL.Path {
		case "/v1/people/me/connections":
			googletest.JSON(w, http.StatusOK, map[string]any{
				"connections": []map[string]any{{
					"resourceName":   "people/c1",
					"names":          []map[string]any{{"displayName": "Ada"}},
					"emailAddresses": []map[string]any{{"value": "ada@x.com"}},
				}},
				"nextPageToken": "tok",
			})
		case "/v1/people:searchContacts":
			googletest.JSON(w, http.StatusOK, map[string]any{
				"results": []map[string]any{{"person": map[string]any{"resourceName": "people/c2"}}},
			})
		default:
			googletest.Error(w, http.StatusNotFound, "Not Found")
		}
	})

	tests := []struct {
		name      string
		args      map[string]any
		wantPath  string
		wantQuery map[string]string
		wantTotal int
		wantNext  string
	}{
		{
			name:      "list connections",
			args:      map[string]any{"sortOrder": "FIRST_NAME_ASCENDING"},
			wantPath:  "/v1/people/me/connections",
			wantQuery: map[string]string{"pageSize": "10", "personFields": defaultReadMask, "sortOrder": "FIRST_NAME_ASCENDING"},
			wantTotal: 1,
			wantNext:  "tok",
		},
		{
			name:      "search uses default page size",
			args:      map[string]any{"query": "ada"},
			wantPath:  "/v1/people:searchContacts",
			wantQuery: map[string]string{"pageSize": "10", "query": "ada", "readMask": defaultReadMask},
			wantTotal: 1,
		},
		{
			name:      "search caps page size",
			args:      map[string]any{"query": "ada", "pageSize": 50},
			wantPath:  "/v1/people:searchContacts",
			wantQuery: map[string]string{"pageSize": "30", "query": "ada", "readMask": defaultReadMask},
			wantTotal: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := googletest.New(t, api)
			tt.args["email"] = googletest.Account

			res := New(srv.Manager).Invoke(context.Background(), "get_workspace_contacts", tt.args)
			require.False(t, res.Failed(), "%v", res.Err)

			assert.Equal(t, tt.wantPath, path)
			for k, v := range tt.wantQuery {
				assert.Equal(t, v, seen.Get(k), k)
			}
			out := res.Data.(ContactList)
			assert.Equal(t, tt.wantTotal, out.Total)
			assert.Equal(t, tt.wantNext, out.NextPageToken)
		})
	}
}

func TestGetContacts_BadSortOrder(t *testing.T) {
	srv := googletest.New(t, http.NotFoundHandler())
	res := New(srv.Manager).Invoke(context.Background(), "get_workspace_contacts", map[string]any{
		"email":     googletest.Account,
		"sortOrder": "RANDOM",
	})
	require.True(t, res.Failed())
	assert.Equal(t, apperrors.KindValidation, res.Err.Kind())
}
