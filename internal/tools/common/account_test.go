package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

type fakeAuth struct {
	calls []string
	err   error
}

func (f *fakeAuth) Handles(ctx context.Context, email string) (*google.Handles, error) {
	f.calls = append(f.calls, email)
	if f.err != nil {
		return nil, f.err
	}
	return &google.Handles{}, nil
}

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"present", map[string]any{"email": "a@x.com"}, "a@x.com"},
		{"trimmed", map[string]any{"email": "  a@x.com "}, "a@x.com"},
		{"missing", map[string]any{}, ""},
		{"wrong type", map[string]any{"email": 5}, ""},
		{"legacy account key ignored", map[string]any{"account": "work"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetAccountFromArgs(tt.args))
		})
	}
}

func TestWithHandles(t *testing.T) {
	ctx := context.Background()
	ran := false
	fn := func(ctx context.Context, h *google.Handles, args map[string]any) *tools.Result {
		ran = true
		return tools.Text("ok")
	}

	t.Run("missing account", func(t *testing.T) {
		auth := &fakeAuth{}
		res := WithHandles(auth, fn)(ctx, map[string]any{})
		require.True(t, res.Failed())
		assert.ErrorIs(t, res.Err, apperrors.ErrAccountRequired)
		assert.Empty(t, auth.calls)
		assert.False(t, ran)
	})

	t.Run("not authenticated", func(t *testing.T) {
		auth := &fakeAuth{err: apperrors.ErrNotAuthenticated}
		res := WithHandles(auth, fn)(ctx, map[string]any{"email": "a@x.com"})
		require.True(t, res.Failed())
		assert.Equal(t, apperrors.KindAuthorization, res.Err.Kind())
		assert.Equal(t, "Account not authenticated", res.Err.Error())
		assert.False(t, ran)
	})

	t.Run("authenticated", func(t *testing.T) {
		auth := &fakeAuth{}
		res := WithHandles(auth, fn)(ctx, map[string]any{"email": "a@x.com"})
		require.False(t, res.Failed())
		assert.Equal(t, []string{"a@x.com"}, auth.calls)
		assert.True(t, ran)
	})
}
