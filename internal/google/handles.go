package google

import (
	"context"
	"net/http"

	calendar "google.golang.org/api/calendar/v3"
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
)

// Handles mints API clients for one authenticated account. It is meant to
// live for a single request.
type Handles struct {
	account   string
	client    *http.Client
	endpoints Endpoints
}

// Account returns the email the handles act for.
func (h *Handles) Account() string {
	return h.account
}

// Gmail returns a Gmail v1 client.
func (h *Handles) Gmail(ctx context.Context) (*gmail.Service, error) {
	return mint(ctx, "gmail", gmail.NewService, serviceOptions(h.client, h.endpoints.Gmail))
}

// Calendar returns a Calendar v3 client.
func (h *Handles) Calendar(ctx context.Context) (*calendar.Service, error) {
	return mint(ctx, "calendar", calendar.NewService, serviceOptions(h.client, h.endpoints.Calendar))
}

// Drive returns a Drive v3 client.
func (h *Handles) Drive(ctx context.Context) (*drive.Service, error) {
	return mint(ctx, "drive", drive.NewService, serviceOptions(h.client, h.endpoints.Drive))
}

// Docs returns a Docs v1 client.
func (h *Handles) Docs(ctx context.Context) (*docs.Service, error) {
	return mint(ctx, "docs", docs.NewService, serviceOptions(h.client, h.endpoints.Docs))
}

// Sheets returns a Sheets v4 client.
func (h *Handles) Sheets(ctx context.Context) (*sheets.Service, error) {
	return mint(ctx, "sheets", sheets.NewService, serviceOptions(h.client, h.endpoints.Sheets))
}

// People returns a People v1 client.
func (h *Handles) People(ctx context.Context) (*people.Service, error) {
	return mint(ctx, "people", people.NewService, serviceOptions(h.client, h.endpoints.People))
}

func mint[S any](ctx context.Context, surface string, newService func(context.Context, ...option.ClientOption) (S, error), opts []option.ClientOption) (S, error) {
	svc, err := newService(ctx, opts...)
	if err != nil {
		var zero S
		return zero, apperrors.Internal(err, "failed to create "+surface+" client")
	}
	return svc, nil
}

func serviceOptions(client *http.Client, endpoint string) []option.ClientOption {
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}
