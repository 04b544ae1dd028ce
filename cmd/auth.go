package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Connect a Google account",
	}
	cmd.AddCommand(newAuthURLCmd(), newAuthCompleteCmd())
	return cmd
}

func newAuthURLCmd() *cobra.Command {
	var (
		email  string
		noWait bool
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print a consent URL and complete the flow from the pasted redirect",
		Long: `Print a Google consent URL for a new account.

After granting access the browser is redirected to the configured redirect
URI. If no server is listening there, copy the full address from the
browser's location bar (or just its code parameter) and paste it here.

With --no-wait the command only prints the URL; the flow is then completed
by a running 'gworkspace serve' or by 'gworkspace auth complete'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				req, err := a.manager.BeginAuthorization(cmd.Context(), email)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Open this URL in a browser:\n\n  %s\n\n", req.URL)
				if noWait {
					return nil
				}

				fmt.Fprint(out, "Paste the redirect URL or authorization code: ")
				line, err := readInput(cmd.InOrStdin())
				if err != nil {
					return err
				}
				code, state, err := parseRedirect(line)
				if err != nil {
					return err
				}
				if state == "" {
					state = req.State
				} else if state != req.State {
					return apperrors.Authorization("Invalid or expired authorization state")
				}

				account, err := a.manager.CompleteAuthorization(cmd.Context(), code, state)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "Successfully authenticated %s\n", account)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account to suggest on the consent screen")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Print the URL and exit")
	return cmd
}

func newAuthCompleteCmd() *cobra.Command {
	var code, state, redirect string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Deliver an authorization code to the running server",
		Long: `Deliver an authorization code and state to the callback of a running
'gworkspace serve'. Only the process that issued a state can accept it.

Pass either --code and --state, or --redirect-url with the full address the
browser was sent to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redirect != "" {
				var err error
				if code, state, err = parseRedirect(redirect); err != nil {
					return err
				}
			}
			if code == "" || state == "" {
				return apperrors.Validation("Missing code or state parameter")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			body, err := deliverCallback(cmd.Context(), http.DefaultClient, cfg.Google.RedirectURI, code, state)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code")
	cmd.Flags().StringVar(&state, "state", "", "Authorization state")
	cmd.Flags().StringVar(&redirect, "redirect-url", "", "Full redirect URL from the browser")
	return cmd
}

// parseRedirect accepts a full redirect URL, a bare query string or a bare
// code. A bare code yields an empty state.
func parseRedirect(input string) (code, state string, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", apperrors.Validation("Missing authorization code")
	}
	if !strings.Contains(input, "?") && !strings.Contains(input, "=") {
		return input, "", nil
	}

	raw := input
	if i := strings.Index(input, "?"); i >= 0 {
		raw = input[i+1:]
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return "", "", apperrors.Validation("Invalid redirect URL: %v", err)
	}
	if e := q.Get("error"); e != "" {
		return "", "", apperrors.Authorization("Google reported: %s", e)
	}
	code = q.Get("code")
	if code == "" {
		return "", "", apperrors.Validation("Missing authorization code")
	}
	return code, q.Get("state"), nil
}

func readInput(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", apperrors.Validation("No authorization code entered")
	}
	return strings.TrimSpace(line), nil
}

// deliverCallback calls the callback endpoint and returns a one-line
// summary of the outcome.
func deliverCallback(ctx context.Context, client *http.Client, callback, code, state string) (string, error) {
	u, err := url.Parse(callback)
	if err != nil {
		return "", apperrors.Configuration("Invalid redirect URI %q: %v", callback, err)
	}
	q := u.Query()
	q.Set("code", code)
	q.Set("state", state)
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", apperrors.Internal(err, "failed to build callback request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUpstream, err, fmt.Sprintf("Could not reach the server at %s; is 'gworkspace serve' running?", u.Host))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return "Authorization delivered to " + u.Host, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return "", apperrors.Newf(apperrors.KindInternal, "Server failed to complete authorization (HTTP %d)", resp.StatusCode)
	default:
		return "", apperrors.Authorization("Server rejected the authorization (HTTP %d)", resp.StatusCode)
	}
}
