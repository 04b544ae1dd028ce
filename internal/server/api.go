package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

// Rules for the email argument of a route.
const (
	emailRequired = "required,email"
	emailOptional = "omitempty,email"
	emailIgnored  = ""
)

// route maps one HTTP endpoint onto an operation.
type route struct {
	method string
	path   string
	tool   string
	// params maps path parameters to argument names.
	params map[string]string
	// fixed arguments override anything the caller sent.
	fixed map[string]any
	email string
}

// op returns a POST route requiring a valid email.
func op(path, tool string) route {
	return route{method: http.MethodPost, path: path, tool: tool, email: emailRequired}
}

func (r route) with(param, arg string) route {
	if r.params == nil {
		r.params = map[string]string{}
	}
	r.params[param] = arg
	return r
}

func (r route) action(a string) route {
	r.fixed = map[string]any{"action": a}
	return r
}

func (r route) as(method string) route {
	r.method = method
	return r
}

func (r route) emailRule(rule string) route {
	r.email = rule
	return r
}

var apiRoutes = []route{
	op("/accounts", "list_workspace_accounts").as(http.MethodGet).emailRule(emailIgnored),
	op("/accounts/authenticate", "authenticate_workspace_account").emailRule(emailOptional),
	op("/accounts/:email", "remove_workspace_account").as(http.MethodDelete).with("email", "email"),

	op("/gmail/search", "search_workspace_emails"),
	op("/gmail/send", "send_workspace_email"),
	op("/gmail/draft", "manage_workspace_draft"),
	op("/gmail/label", "manage_workspace_label"),
	op("/gmail/label-assignment", "manage_workspace_label_assignment"),
	op("/gmail/settings", "get_workspace_gmail_settings").as(http.MethodGet),

	op("/calendar/list", "list_workspace_calendar_events"),
	op("/calendar/event", "create_workspace_calendar_event"),
	op("/calendar/event/:id", "get_workspace_calendar_event").as(http.MethodGet).with("id", "eventId"),
	op("/calendar/event/:id", "manage_workspace_calendar_event").as(http.MethodPut).with("id", "eventId").action("update"),
	op("/calendar/event/:id", "delete_workspace_calendar_event").as(http.MethodDelete).with("id", "eventId"),
	op("/calendar/event/:id/respond", "manage_workspace_calendar_event").with("id", "eventId").action("respond"),

	op("/drive/list", "list_drive_files"),
	op("/drive/search", "search_drive_files"),
	op("/drive/upload", "upload_drive_file"),
	op("/drive/folder", "create_drive_folder"),
	op("/drive/download/:id", "download_drive_file").with("id", "fileId"),
	op("/drive/file/:id", "delete_drive_file").as(http.MethodDelete).with("id", "fileId"),
	op("/drive/file/:id/permissions", "update_drive_permissions").with("id", "fileId"),

	op("/contacts/list", "get_workspace_contacts"),

	op("/docs/create", "create_workspace_document"),
	op("/docs/list", "list_workspace_documents"),
	op("/docs/:id", "get_workspace_document").as(http.MethodGet).with("id", "documentId"),
	op("/docs/:id/copy", "copy_workspace_document").with("id", "documentId"),
	op("/docs/:id/insert", "insert_text_into_document").with("id", "documentId"),
	op("/docs/:id/delete", "delete_text_from_document").with("id", "documentId"),
	op("/docs/:id/batch", "batch_update_document").with("id", "documentId"),

	op("/sheets/create", "create_workspace_spreadsheet"),
	op("/sheets/:id/values/get", "get_sheet_values").with("id", "spreadsheetId"),
	op("/sheets/:id/values/batch-get", "batch_get_sheet_values").with("id", "spreadsheetId"),
	op("/sheets/:id/values/update", "update_sheet_values").with("id", "spreadsheetId"),
	op("/sheets/:id/values/batch-update", "batch_update_sheet_values").with("id", "spreadsheetId"),
	op("/sheets/:id/values/append", "append_sheet_values").with("id", "spreadsheetId"),
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type messageBody struct {
	Message string `json:"message"`
}

func (s *Server) registerAPI(g *echo.Group) {
	for _, rt := range apiRoutes {
		g.Add(rt.method, rt.path, s.invoke(rt))
	}
}

func (s *Server) invoke(rt route) echo.HandlerFunc {
	return func(c echo.Context) error {
		args, err := bindArgs(c)
		if err != nil {
			return s.fail(c, apperrors.Validation("Invalid request body: %v", err))
		}
		for param, arg := range rt.params {
			v, err := pathParam(c, param)
			if err != nil {
				return s.fail(c, err)
			}
			args[arg] = v
		}
		for k, v := range rt.fixed {
			args[k] = v
		}

		if err := s.checkEmail(args, rt.email); err != nil {
			return s.fail(c, err)
		}

		ctx := tools.WithTransport(c.Request().Context(), tools.TransportHTTP)
		res, err := s.dispatcher.Invoke(ctx, rt.tool, args)
		if err != nil {
			return s.fail(c, apperrors.As(err))
		}
		if res.Failed() {
			return s.fail(c, res.Err)
		}
		if res.Data != nil {
			return c.JSON(http.StatusOK, res.Data)
		}
		return c.JSON(http.StatusOK, messageBody{Message: res.Message})
	}
}

// pathParam returns a decoded path parameter. echo matches on URL.RawPath
// when the request carries one, leaving its segments escaped.
func pathParam(c echo.Context, name string) (string, *apperrors.Error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", apperrors.Validation("Invalid path parameter %s: %v", name, err)
	}
	return decoded, nil
}

func (s *Server) checkEmail(args map[string]any, rule string) *apperrors.Error {
	if rule == emailIgnored {
		return nil
	}
	email, _ := args["email"].(string)
	if rule == emailRequired && email == "" {
		return apperrors.ErrAccountRequired
	}
	if err := s.validate.Var(email, rule); err != nil {
		return apperrors.Validation("Invalid email address: %s", email)
	}
	return nil
}

// bindArgs reads the query string for GET and DELETE and the JSON body
// otherwise. Repeated query keys become lists.
func bindArgs(c echo.Context) (map[string]any, error) {
	args := map[string]any{}
	switch c.Request().Method {
	case http.MethodGet, http.MethodDelete:
		for k, v := range c.QueryParams() {
			if len(v) == 1 {
				args[k] = v[0]
			} else {
				args[k] = v
			}
		}
	default:
		if err := (&echo.DefaultBinder{}).BindBody(c, &args); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func (s *Server) fail(c echo.Context, err *apperrors.Error) error {
	if err == nil {
		err = apperrors.New(apperrors.KindInternal, "unknown failure")
	}
	return c.JSON(err.HTTPStatus(), errorBody{Error: err.Error(), Kind: string(err.Kind())})
}

// handleError writes echo's own failures (unknown route, bad method,
// oversized body) in the same shape as operation failures.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := http.StatusText(status)
	kind := string(apperrors.KindInternal)

	var he *echo.HTTPError
	var ae *apperrors.Error
	switch {
	case errors.As(err, &he):
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
		if status < http.StatusInternalServerError {
			kind = string(apperrors.KindProtocol)
		}
	case errors.As(err, &ae):
		status, msg, kind = ae.HTTPStatus(), ae.Error(), string(ae.Kind())
	default:
		s.logger.Error("unhandled request error", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorBody{Error: msg, Kind: kind})
}
