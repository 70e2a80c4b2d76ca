package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
	"github.com/dmitrijs2005/usersadmin/internal/common"
	"github.com/dmitrijs2005/usersadmin/internal/logging"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody caps how much of a failed response is read for error details.
const maxErrorBody = 64 << 10

// nowFn is a test seam for token-expiry checks.
var nowFn = time.Now

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	timeout time.Duration
	log     logging.Logger
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *HTTPClient) { c.token = strings.TrimSpace(token) }
}

// WithTimeout bounds every request; zero leaves only the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithLogger logs every request at debug level and failures at warn.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api". The users collection lives at baseURL + "/users".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{baseURL: u, http: &http.Client{}, log: logging.Nop{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping reports whether the API answers at all. Any HTTP response, including
// 401, counts as reachable; only transport failures return ErrUnavailable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	params := url.Values{"page": {"1"}, "limit": {"1"}}
	err := c.do(ctx, http.MethodGet, c.usersPath(nil), params, nil, nil)
	var apiErr *APIError
	if err == nil || errors.As(err, &apiErr) {
		return nil
	}
	return err
}

func (c *HTTPClient) ListUsers(ctx context.Context, params url.Values) (models.UserPage, error) {
	var page models.UserPage
	if err := c.do(ctx, http.MethodGet, c.usersPath(nil), params, nil, &page); err != nil {
		return models.UserPage{}, err
	}
	if page.Data == nil {
		page.Data = []models.User{}
	}
	return page, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	return c.mutate(ctx, http.MethodPost, c.usersPath(nil), req)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (models.User, error) {
	return c.mutate(ctx, http.MethodPut, c.usersPath(&id), req)
}

func (c *HTTPClient) SetStatus(ctx context.Context, id int64, status models.Status) (models.User, error) {
	return c.mutate(ctx, http.MethodPatch, c.usersPath(&id), models.StatusRequest{Status: status})
}

// mutate sends a create/update/status request. The status code alone decides
// the outcome: a 2xx whose body cannot be decoded is still a success and
// yields the zero User.
func (c *HTTPClient) mutate(ctx context.Context, method, path string, in any) (models.User, error) {
	var u models.User
	err := c.do(ctx, method, path, nil, in, &u)
	if errors.Is(err, ErrUnexpectedResponse) {
		c.log.Warn(ctx, "ignoring undecodable response body", "method", method, "path", path, "error", err)
		return models.User{}, nil
	}
	return u, err
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.usersPath(&id), nil, nil, nil)
}

func (c *HTTPClient) usersPath(id *int64) string {
	p := c.baseURL.Path + "/users"
	if id != nil {
		p += "/" + strconv.FormatInt(*id, 10)
	}
	return p
}

// do performs one request. in, when non-nil, is sent as a JSON body; out,
// when non-nil, receives the decoded JSON response. Responses without a
// body (204, or an empty 200) leave out untouched.
func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	if c.token != "" {
		if exp, ok := tokenExpiry(c.token); ok && !nowFn().Before(exp) {
			return ErrTokenExpired
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := *c.baseURL
	u.Path = path
	u.RawQuery = params.Encode()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		// The encoded body may carry a password.
		defer common.WipeByteArray(b)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", common.AppName)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, ctxErr)
		}
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()
	c.log.Debug(ctx, "api request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseAPIError(resp.StatusCode, b, requestID)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrUnexpectedResponse, method, path, err)
	}
	return nil
}
