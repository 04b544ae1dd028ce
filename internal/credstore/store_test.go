package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() *Record {
	expiry := time.Date(2026, 3, 1, 12, 30, 0, 0, time.FixedZone("CET", 3600))
	return &Record{
		Token:        "ya29.access",
		RefreshToken: "1//refresh",
		TokenURI:     "https://oauth2.googleapis.com/token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       []string{"openid", "https://www.googleapis.com/auth/gmail.readonly"},
		Expiry:       &expiry,
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "config", "tokens"), nil)
	want := testRecord()

	require.NoError(t, store.Save("a@x.com", want))

	got, ok := store.Load("a@x.com")
	require.True(t, ok)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.Equal(t, want.TokenURI, got.TokenURI)
	assert.Equal(t, want.ClientID, got.ClientID)
	assert.Equal(t, want.ClientSecret, got.ClientSecret)
	assert.Equal(t, want.Scopes, got.Scopes)
	require.NotNil(t, got.Expiry)
	assert.True(t, want.Expiry.Equal(*got.Expiry), "expiry %v != %v", got.Expiry, want.Expiry)
}

func TestFileStore_SaveWithoutExpiry(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, nil)
	rec := testRecord()
	rec.Expiry = nil
	rec.RefreshToken = ""

	require.NoError(t, store.Save("b@x.com", rec))

	raw, err := os.ReadFile(filepath.Join(dir, "b@x.com.json"))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"token", "refresh_token", "token_uri", "client_id", "client_secret", "scopes", "expiry"} {
		assert.Contains(t, fields, key)
	}
	assert.Nil(t, fields["expiry"])

	got, ok := store.Load("b@x.com")
	require.True(t, ok)
	assert.Nil(t, got.Expiry)
	assert.False(t, got.Expired(time.Now()))
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)
	rec := testRecord()
	require.NoError(t, store.Save("a@x.com", rec))

	rec.Token = "ya29.newer"
	require.NoError(t, store.Save("a@x.com", rec))

	got, ok := store.Load("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "ya29.newer", got.Token)
}

func TestFileStore_SaveRejectsIncompleteRecord(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)

	err := store.Save("a@x.com", &Record{RefreshToken: "only-refresh"})
	assert.Error(t, err)

	_, ok := store.Load("a@x.com")
	assert.False(t, ok)
}

func TestFileStore_LoadMissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, nil)

	_, ok := store.Load("nobody@x.com")
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken@x.com.json"), []byte("{not json"), 0o600))
	_, ok = store.Load("broken@x.com")
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty@x.com.json"), []byte(`{"token":""}`), 0o600))
	_, ok = store.Load("empty@x.com")
	assert.False(t, ok)
}

func TestFileStore_List(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, nil)

	accounts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	require.NoError(t, store.Save("b@x.com", testRecord()))
	require.NoError(t, store.Save("a@x.com", testRecord()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o700))

	accounts, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, accounts)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist"), nil)

	accounts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestFileStore_Remove(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)

	require.NoError(t, store.Remove("never@x.com"))
	_, ok := store.Load("never@x.com")
	assert.False(t, ok)

	require.NoError(t, store.Save("a@x.com", testRecord()))
	require.NoError(t, store.Remove("a@x.com"))
	_, ok = store.Load("a@x.com")
	assert.False(t, ok)

	require.NoError(t, store.Remove("a@x.com"))
}

func TestValidateAccount(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{name: "email", account: "a@x.com"},
		{name: "plus address", account: "a+tag@x.co.uk"},
		{name: "empty", account: "", wantErr: true},
		{name: "slash", account: "../etc/passwd", wantErr: true},
		{name: "backslash", account: `a\b`, wantErr: true},
		{name: "dot dot", account: "..", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAccount(tt.account)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecord_Expired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	almost := now.Add(ExpirySkew / 2)

	assert.True(t, (&Record{Expiry: &past}).Expired(now))
	assert.False(t, (&Record{Expiry: &future}).Expired(now))
	assert.True(t, (&Record{Expiry: &almost}).Expired(now), "token inside the skew window should refresh")
	assert.False(t, (&Record{}).Expired(now))
}

func TestFileStore_LoadExpiryFormats(t *testing.T) {
	tests := []struct {
		name   string
		expiry string
		want   *time.Time
	}{
		{
			name:   "zone-less iso-8601 read as UTC",
			expiry: `"2030-01-01T12:00:00.123456"`,
			want:   ptr(time.Date(2030, 1, 1, 12, 0, 0, 123456000, time.UTC)),
		},
		{
			name:   "zone-less without fraction",
			expiry: `"2030-01-01T12:00:00"`,
			want:   ptr(time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)),
		},
		{
			name:   "rfc3339 with offset",
			expiry: `"2030-01-01T13:00:00+01:00"`,
			want:   ptr(time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)),
		},
		{name: "null", expiry: `null`},
		{name: "empty string", expiry: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store := NewFileStore(dir, nil)
			data := `{"token":"ya29.a","refresh_token":"1//r","token_uri":"https://oauth2.googleapis.com/token",` +
				`"client_id":"id","client_secret":"secret","scopes":["openid"],"expiry":` + tt.expiry + `}`
			require.NoError(t, os.WriteFile(filepath.Join(dir, "a@x.com.json"), []byte(data), 0o600))

			got, ok := store.Load("a@x.com")
			require.True(t, ok)
			assert.Equal(t, "ya29.a", got.Token)
			assert.Equal(t, []string{"openid"}, got.Scopes)
			if tt.want == nil {
				assert.Nil(t, got.Expiry)
				return
			}
			require.NotNil(t, got.Expiry)
			assert.True(t, tt.want.Equal(*got.Expiry), "expiry %v != %v", got.Expiry, tt.want)
		})
	}
}

func TestFileStore_LoadRejectsMalformedExpiry(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, nil)
	data := `{"token":"ya29.a","token_uri":"https://oauth2.googleapis.com/token","expiry":"next tuesday"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a@x.com.json"), []byte(data), 0o600))

	_, ok := store.Load("a@x.com")
	assert.False(t, ok)
}

func ptr[T any](v T) *T { return &v }
