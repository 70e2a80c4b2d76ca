package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrTokenExpired       = errors.New("access token expired")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// APIError is a non-2xx response from the backend.
//
// Fields holds field-level messages when the body carried any; it is empty
// for errors that cannot be attributed to a form field.
type APIError struct {
	Status    int
	Message   string
	Fields    map[string]string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, strings.ToLower(http.StatusText(e.Status)))
}

// Is lets errors.Is(err, ErrUnauthorized) and errors.Is(err, ErrNotFound)
// match on the status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// IsValidation reports whether the server rejected the payload itself, as
// opposed to failing or refusing the request.
func (e *APIError) IsValidation() bool {
	if len(e.Fields) > 0 {
		return true
	}
	switch e.Status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	}
	return false
}

// parseAPIError builds an APIError from a failed response body. The body
// shape is not fixed by the API, so field errors are looked up in the
// layouts backends commonly use:
//
//	{"message": "...", "errors": {"username": "taken"}}
//	{"message": "...", "errors": [{"field": "username", "message": "taken"}]}
//	{"errors": {"field": "username", "message": "taken"}}
func parseAPIError(status int, body []byte, requestID string) *APIError {
	e := &APIError{Status: status, RequestID: requestID}
	if !gjson.ValidBytes(body) {
		e.Message = strings.TrimSpace(string(body))
		return e
	}

	root := gjson.ParseBytes(body)
	for _, key := range []string{"message", "error", "detail"} {
		if m := root.Get(key); m.Type == gjson.String && m.String() != "" {
			e.Message = m.String()
			break
		}
	}

	fields := map[string]string{}
	errs := root.Get("errors")
	switch {
	case errs.IsArray():
		errs.ForEach(func(_, item gjson.Result) bool {
			addFieldError(fields, item)
			return true
		})
	case errs.IsObject() && errs.Get("field").Exists():
		addFieldError(fields, errs)
	case errs.IsObject():
		errs.ForEach(func(key, value gjson.Result) bool {
			msg := value.String()
			if value.IsArray() {
				msg = value.Get("0").String()
			}
			if msg != "" {
				fields[key.String()] = msg
			}
			return true
		})
	}
	if len(fields) > 0 {
		e.Fields = fields
	}
	if e.Message == "" && len(fields) == 1 {
		for _, msg := range fields {
			e.Message = msg
		}
	}
	return e
}

func addFieldError(dst map[string]string, item gjson.Result) {
	field := item.Get("field").String()
	if field == "" {
		field = item.Get("path").String()
	}
	msg := item.Get("message").String()
	if field != "" && msg != "" {
		dst[field] = msg
	}
}
