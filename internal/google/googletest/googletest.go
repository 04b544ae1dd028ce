// Package googletest runs a fake Google backend for capability tests. A
// single httptest server answers the token endpoint and delegates every API
// path to the handler supplied by the test.
package googletest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chaitanya2108/Google-Workspace/internal/credstore"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
)

// Account is the authenticated account every fixture starts with.
const Account = "a@x.com"

// Server is a running fake backend.
type Server struct {
	*httptest.Server
	Manager   *google.Manager
	Store     *credstore.FileStore
	refreshes atomic.Int32
}

// Refreshes reports how many refresh_token grants the fake has served.
func (s *Server) Refreshes() int32 {
	return s.refreshes.Load()
}

// New starts the fake with api handling every non-token path and stores a
// valid, unexpired credential for Account.
func New(t testing.TB, api http.Handler) *Server {
	t.Helper()

	s := &Server{}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		s.refreshes.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "refreshed",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.Handle("/", api)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	s.Store = credstore.NewFileStore(t.TempDir(), logging.Discard())
	root := s.URL + "/"
	m, err := google.NewManager(google.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Endpoints: google.Endpoints{
			TokenURL: s.URL + "/token",
			Userinfo: root,
			Gmail:    root,
			Calendar: s.URL + "/calendar/v3/",
			Drive:    s.URL + "/drive/v3/",
			Docs:     root,
			Sheets:   root,
			People:   root,
		},
		HTTPClient: s.Client(),
	}, s.Store, nil, logging.Discard())
	if err != nil {
		t.Fatalf("googletest: %v", err)
	}
	s.Manager = m

	expiry := time.Now().Add(time.Hour)
	if err := s.Store.Save(Account, &credstore.Record{
		Token:        "valid-token",
		RefreshToken: "refresh-token",
		TokenURI:     s.URL + "/token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Expiry:       &expiry,
	}); err != nil {
		t.Fatalf("googletest: %v", err)
	}
	return s
}

// JSON writes v as a JSON response.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a Google-style error body.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"error": map[string]any{"code": status, "message": message},
	})
}
