package google

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/credstore"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
)

// DefaultRedirectURL is used when no redirect URI is configured.
const DefaultRedirectURL = "http://localhost:8080/oauth/callback"

// Endpoints overrides the Google URLs the manager talks to. Empty fields
// keep the production defaults.
type Endpoints struct {
	AuthURL  string
	TokenURL string
	Userinfo string
	Gmail    string
	Calendar string
	Drive    string
	Docs     string
	Sheets   string
	People   string
}

// Config is the static OAuth client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	StateTTL     time.Duration
	Endpoints    Endpoints

	// HTTPClient is the base client for token and API calls. Nil means
	// http.DefaultClient.
	HTTPClient *http.Client
}

// AuthorizationRequest is what a caller presents to the end user.
type AuthorizationRequest struct {
	URL   string `json:"authUrl"`
	State string `json:"state"`
}

// Account is one entry of ListAccounts.
type Account struct {
	Email         string `json:"email"`
	Authenticated bool   `json:"authenticated"`
}

// Manager runs the OAuth flow for many accounts and mints API handles.
type Manager struct {
	oauth      *oauth2.Config
	endpoints  Endpoints
	httpClient *http.Client
	store      credstore.Store
	states     *stateRegistry
	locks      *accountLocks
	metrics    *instrumentation.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewManager validates cfg and returns a Manager. Missing client
// credentials are a configuration error.
func NewManager(cfg Config, store credstore.Store, metrics *instrumentation.Metrics, logger *slog.Logger) (*Manager, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, apperrors.Configuration("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables are required")
	}
	if store == nil {
		return nil, apperrors.Configuration("credential store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	redirect := cfg.RedirectURL
	if redirect == "" {
		redirect = DefaultRedirectURL
	}
	if _, err := url.ParseRequestURI(redirect); err != nil {
		return nil, apperrors.Configuration("invalid redirect URI %q: %v", redirect, err)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	endpoint := googleoauth.Endpoint
	if cfg.Endpoints.AuthURL != "" {
		endpoint.AuthURL = cfg.Endpoints.AuthURL
	}
	if cfg.Endpoints.TokenURL != "" {
		endpoint.TokenURL = cfg.Endpoints.TokenURL
	}
	if _, err := url.ParseRequestURI(endpoint.AuthURL); err != nil {
		return nil, apperrors.Configuration("invalid authorization endpoint %q: %v", endpoint.AuthURL, err)
	}

	return &Manager{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirect,
			Scopes:       append([]string(nil), scopes...),
			Endpoint:     endpoint,
		},
		endpoints:  cfg.Endpoints,
		httpClient: cfg.HTTPClient,
		store:      store,
		states:     newStateRegistry(cfg.StateTTL),
		locks:      newAccountLocks(),
		metrics:    metrics,
		logger:     logger.With(logging.Component("auth")),
		now:        time.Now,
	}, nil
}

// RedirectURL returns the callback URL registered with Google.
func (m *Manager) RedirectURL() string {
	return m.oauth.RedirectURL
}

// BeginAuthorization issues a fresh state and the consent URL for it. The
// hint is forwarded as login_hint only; it never decides the account.
func (m *Manager) BeginAuthorization(ctx context.Context, hint string) (*AuthorizationRequest, error) {
	state, err := m.states.issue(hint)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to generate authorization state")
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	}
	if hint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", hint))
	}

	m.logger.DebugContext(ctx, "authorization started", logging.Operation("begin_authorization"))

	return &AuthorizationRequest{
		URL:   m.oauth.AuthCodeURL(state, opts...),
		State: state,
	}, nil
}

// CompleteAuthorization exchanges code for tokens, resolves the account's
// email through userinfo and stores the credential under that email.
func (m *Manager) CompleteAuthorization(ctx context.Context, code, state string) (string, error) {
	if code == "" || state == "" {
		return "", apperrors.Validation("Missing code or state parameter")
	}
	if _, ok := m.states.consume(state); !ok {
		m.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultRejected)
		m.logger.WarnContext(ctx, "authorization state rejected", logging.Operation("complete_authorization"))
		return "", apperrors.Authorization("Invalid or expired authorization state")
	}

	octx := m.oauthContext(ctx)
	tok, err := m.oauth.Exchange(octx, code)
	if err != nil {
		return "", m.authFailed(ctx, err, "Failed to exchange authorization code")
	}

	email, err := m.lookupEmail(octx, tok)
	if err != nil {
		return "", m.authFailed(ctx, err, "Could not retrieve user email")
	}

	if err := m.store.Save(email, m.recordFromToken(tok, nil)); err != nil {
		m.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return "", apperrors.Internal(err, "Failed to save credentials")
	}

	m.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)
	m.logger.InfoContext(ctx, "account authorized",
		logging.Operation("complete_authorization"),
		logging.UserHash(email),
		logging.Domain(email))
	return email, nil
}

func (m *Manager) authFailed(ctx context.Context, err error, msg string) error {
	m.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
	m.logger.WarnContext(ctx, "authorization failed",
		logging.Operation("complete_authorization"),
		logging.Err(err))
	if e := apperrors.As(err); e != nil && e.Kind() != apperrors.KindUpstream && e.Kind() != apperrors.KindInternal {
		return e
	}
	return apperrors.Wrap(apperrors.KindAuthorization, err, msg)
}

func (m *Manager) lookupEmail(ctx context.Context, tok *oauth2.Token) (string, error) {
	opts := serviceOptions(m.oauth.Client(ctx, tok), m.endpoints.Userinfo)
	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return "", err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if info.Email == "" {
		return "", apperrors.Authorization("Could not retrieve user email")
	}
	return info.Email, nil
}

// ListAccounts returns every account with a stored credential.
func (m *Manager) ListAccounts() ([]Account, error) {
	names, err := m.store.List()
	if err != nil {
		return nil, apperrors.Internal(err, "Failed to list accounts")
	}
	accounts := make([]Account, 0, len(names))
	for _, name := range names {
		accounts = append(accounts, Account{Email: name, Authenticated: true})
	}
	return accounts, nil
}

// RemoveAccount deletes the account's credential. Removing an unknown
// account succeeds.
func (m *Manager) RemoveAccount(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.ErrAccountRequired
	}
	unlock := m.locks.lock(email)
	defer unlock()

	if err := m.store.Remove(email); err != nil {
		return apperrors.Internal(err, "Failed to remove account")
	}
	m.logger.InfoContext(ctx, "account removed", logging.Operation("remove_account"), logging.UserHash(email))
	return nil
}

// IsAuthenticated reports whether a credential is stored for email. Token
// freshness is not checked.
func (m *Manager) IsAuthenticated(email string) bool {
	if email == "" {
		return false
	}
	_, ok := m.store.Load(email)
	return ok
}

// TokenSource returns a token source for email, refreshing and persisting
// the credential first when it has expired.
func (m *Manager) TokenSource(ctx context.Context, email string) (oauth2.TokenSource, error) {
	if email == "" {
		return nil, apperrors.ErrAccountRequired
	}

	unlock := m.locks.lock(email)
	defer unlock()

	rec, ok := m.store.Load(email)
	if !ok || !rec.Valid() {
		return nil, apperrors.ErrNotAuthenticated
	}

	tok := tokenFromRecord(rec)
	if !rec.Expired(m.now()) {
		return oauth2.StaticTokenSource(tok), nil
	}

	log := logging.WithAccount(m.logger, email).With(logging.Operation("refresh_token"))
	if rec.RefreshToken == "" {
		m.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSkipped)
		log.WarnContext(ctx, "access token expired and no refresh token is stored")
		return nil, apperrors.ErrNotAuthenticated
	}

	conf := m.refreshConfig(rec)
	fresh, err := conf.TokenSource(m.oauthContext(ctx), tok).Token()
	if err != nil {
		m.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		log.WarnContext(ctx, "token refresh failed", logging.Err(err))
		return nil, apperrors.Wrap(apperrors.KindAuthorization, err, "Account not authenticated: token refresh failed")
	}
	m.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)

	if fresh.AccessToken != tok.AccessToken {
		if err := m.store.Save(email, m.recordFromToken(fresh, rec)); err != nil {
			log.ErrorContext(ctx, "failed to persist refreshed token", logging.Err(err))
		} else {
			log.DebugContext(ctx, "refreshed token persisted", slog.String("access_token", logging.SanitizeToken(fresh.AccessToken)))
		}
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = rec.RefreshToken
	}
	return oauth2.StaticTokenSource(fresh), nil
}

// Handles returns an authenticated handle factory for email.
func (m *Manager) Handles(ctx context.Context, email string) (*Handles, error) {
	ts, err := m.TokenSource(ctx, email)
	if err != nil {
		return nil, err
	}
	return &Handles{
		account:   email,
		client:    oauth2.NewClient(m.oauthContext(ctx), ts),
		endpoints: m.endpoints,
	}, nil
}

// refreshConfig prefers the client and token endpoint stored with the
// credential, falling back to the manager's own.
func (m *Manager) refreshConfig(rec *credstore.Record) *oauth2.Config {
	conf := *m.oauth
	if rec.TokenURI != "" {
		conf.Endpoint.TokenURL = rec.TokenURI
	}
	if rec.ClientID != "" && rec.ClientSecret != "" {
		conf.ClientID = rec.ClientID
		conf.ClientSecret = rec.ClientSecret
	}
	return &conf
}

func (m *Manager) oauthContext(ctx context.Context) context.Context {
	if m.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
}

// recordFromToken builds the stored record for tok. A provider that omits
// the refresh token or scope on refresh keeps the prior values.
func (m *Manager) recordFromToken(tok *oauth2.Token, prior *credstore.Record) *credstore.Record {
	rec := &credstore.Record{
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenURI:     m.oauth.Endpoint.TokenURL,
		ClientID:     m.oauth.ClientID,
		ClientSecret: m.oauth.ClientSecret,
		Scopes:       m.oauth.Scopes,
	}
	if prior != nil {
		if rec.RefreshToken == "" {
			rec.RefreshToken = prior.RefreshToken
		}
		if prior.TokenURI != "" {
			rec.TokenURI = prior.TokenURI
		}
		if len(prior.Scopes) > 0 {
			rec.Scopes = prior.Scopes
		}
	}
	if granted, ok := tok.Extra("scope").(string); ok && granted != "" {
		rec.Scopes = strings.Fields(granted)
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry.UTC()
		rec.Expiry = &expiry
	}
	return rec
}

func tokenFromRecord(rec *credstore.Record) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  rec.Token,
		RefreshToken: rec.RefreshToken,
		TokenType:    "Bearer",
	}
	if rec.Expiry != nil {
		tok.Expiry = *rec.Expiry
	}
	return tok
}
