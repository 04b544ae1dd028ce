package credstore

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/chaitanya2108/Google-Workspace/internal/logging"
)

const (
	fileExt  = ".json"
	dirPerm  = 0o700
	filePerm = 0o600

	// ExpirySkew treats a token this close to its expiry as expired, so it
	// is refreshed before an upstream call can reject it.
	ExpirySkew = 10 * time.Second

	// zonelessLayout is the ISO-8601 form written without an offset, as
	// Python's datetime.isoformat does for naive UTC times.
	zonelessLayout = "2006-01-02T15:04:05.999999999"
)

// Record is the persisted OAuth material for one account.
type Record struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refresh_token"`
	TokenURI     string     `json:"token_uri"`
	ClientID     string     `json:"client_id"`
	ClientSecret string     `json:"client_secret"`
	Scopes       []string   `json:"scopes"`
	Expiry       *time.Time `json:"expiry"`
}

// Valid reports whether the record carries the minimum a credential needs.
func (r *Record) Valid() bool {
	return r != nil && r.Token != "" && r.TokenURI != ""
}

// UnmarshalJSON accepts an expiry in RFC 3339 or in zone-less ISO-8601,
// which is read as UTC. An empty or null expiry decodes to nil.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		*plain
		Expiry *string `json:"expiry"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Expiry = nil
	if aux.Expiry == nil || *aux.Expiry == "" {
		return nil
	}
	expiry, err := parseExpiry(*aux.Expiry)
	if err != nil {
		return err
	}
	r.Expiry = &expiry
	return nil
}

func parseExpiry(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(zonelessLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid expiry %q: not an ISO-8601 timestamp", v)
	}
	return t, nil
}

// Expired reports whether the access token is past, or within ExpirySkew
// of, its expiry at now. A record without an expiry never expires.
func (r *Record) Expired(now time.Time) bool {
	return r.Expiry != nil && !now.Add(ExpirySkew).Before(*r.Expiry)
}

// Store persists credential records, one per account.
type Store interface {
	Save(account string, rec *Record) error
	Load(account string) (*Record, bool)
	List() ([]string, error)
	Remove(account string) error
}

// FileStore keeps each account's record in <dir>/<account>.json.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore returns a store rooted at dir. The directory is created on the
// first save.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger.With(logging.Component("credstore"))}
}

// Dir returns the directory holding the credential files.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(account string) (string, error) {
	if err := validateAccount(account); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, account+fileExt), nil
}

// Save overwrites the account's credential file with rec.
func (s *FileStore) Save(account string, rec *Record) error {
	p, err := s.path(account)
	if err != nil {
		return err
	}
	if !rec.Valid() {
		return errors.Errorf("credential record for %s has no access token or token endpoint", account)
	}

	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return errors.Wrap(err, "failed to create credential directory")
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode credential record")
	}

	if err := os.WriteFile(p, data, filePerm); err != nil {
		return errors.Wrapf(err, "failed to write credential file for %s", account)
	}
	return nil
}

// Load returns the account's record. A missing file or an undecodable one
// both report false; decode failures are logged.
func (s *FileStore) Load(account string) (*Record, bool) {
	p, err := s.path(account)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read credential file", logging.UserHash(account), logging.Err(err))
		}
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("failed to decode credential file", logging.UserHash(account), logging.Err(err))
		return nil, false
	}
	if !rec.Valid() {
		s.logger.Warn("credential file is incomplete", logging.UserHash(account))
		return nil, false
	}
	return &rec, true
}

// List returns every account with a credential file, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "failed to read credential directory")
	}

	accounts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		accounts = append(accounts, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(accounts)
	return accounts, nil
}

// Remove deletes the account's credential file. Removing an account that has
// no file succeeds.
func (s *FileStore) Remove(account string) error {
	p, err := s.path(account)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "failed to remove credential file for %s", account)
	}
	return nil
}

// validateAccount keeps account ids from escaping the credential directory.
func validateAccount(account string) error {
	if account == "" {
		return errors.New("account is required")
	}
	if strings.ContainsAny(account, `/\`) || account == "." || account == ".." || strings.Contains(account, "..") {
		return errors.Errorf("invalid account identifier %q", account)
	}
	return nil
}
