package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
)

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 50px auto; padding: 20px;">
<h1 style="color: {{if .OK}}#4CAF50{{else}}#D32F2F{{end}};">{{.Title}}</h1>
<p>{{.Message}}</p>
{{if .OK}}<p>You can now close this window and return to your client.</p>
<script>setTimeout(function() { window.close(); }, 3000);</script>{{end}}
</body>
</html>
`))

type callbackView struct {
	OK      bool
	Title   string
	Message string
}

// oauthCallback completes the authorization Google redirects back with.
// The state must have been issued by this process and not yet used.
func (s *Server) oauthCallback(c echo.Context) error {
	if denied := c.QueryParam("error"); denied != "" {
		return renderCallback(c, http.StatusBadRequest, callbackView{
			Title:   "Authentication failed",
			Message: "Google reported: " + denied,
		})
	}

	code, state := c.QueryParam("code"), c.QueryParam("state")
	if code == "" || state == "" {
		return renderCallback(c, http.StatusBadRequest, callbackView{
			Title:   "Authentication failed",
			Message: "Missing authorization code or state",
		})
	}

	email, err := s.auth.CompleteAuthorization(c.Request().Context(), code, state)
	if err != nil {
		s.logger.Warn("oauth callback rejected", logging.Err(err))
		status := http.StatusUnauthorized
		if ae := apperrors.As(err); ae.Kind() == apperrors.KindInternal {
			status = http.StatusInternalServerError
		}
		return renderCallback(c, status, callbackView{
			Title:   "Authentication failed",
			Message: err.Error(),
		})
	}

	return renderCallback(c, http.StatusOK, callbackView{
		OK:      true,
		Title:   "Authentication successful",
		Message: "The account " + email + " is now connected.",
	})
}

func renderCallback(c echo.Context, status int, v callbackView) error {
	var buf bytes.Buffer
	if err := callbackPage.Execute(&buf, v); err != nil {
		return err
	}
	return c.HTML(status, buf.String())
}
