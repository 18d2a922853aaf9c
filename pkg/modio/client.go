// Package modio is a client for the mod.io REST API https://docs.mod.io
package modio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minepkg/modio/internals/ownhttp"
	"golang.org/x/oauth2"
)

const (
	// LiveURL is the API url of the production environment
	LiveURL = "https://api.mod.io/v1"
	// TestURL is the API url of the test environment (test.mod.io)
	TestURL = "https://api.test.mod.io/v1"
)

// Environment selects which mod.io deployment the client talks to
type Environment int

const (
	// Live is the production environment (mod.io)
	Live Environment = iota
	// Test is the sandbox environment (test.mod.io). Start here and switch to Live once
	// your game is ready to launch
	Test
)

// URL returns the API url of the environment
func (e Environment) URL() string {
	if e == Test {
		return TestURL
	}
	return LiveURL
}

func (e Environment) String() string {
	if e == Test {
		return "test"
	}
	return "live"
}

// ErrInvalidEnvironment is returned by ParseEnvironment for unknown names
var ErrInvalidEnvironment = errors.New("invalid environment. Use \"live\" or \"test\"")

// ParseEnvironment converts "live" or "test" to an Environment
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "live", "production":
		return Live, nil
	case "test":
		return Test, nil
	default:
		return Live, fmt.Errorf("%w: %q", ErrInvalidEnvironment, s)
	}
}

// Config configures a new Client
type Config struct {
	Environment Environment
	// BaseURL overwrites the url derived from Environment
	BaseURL string
	GameID  uint32
	APIKey  string
	// HTTP is the client used for all requests, defaults to http.DefaultClient
	HTTP *http.Client
	// Logger receives debug output for every request. Nothing is logged if nil
	Logger *log.Logger
	// RetryAttempts is the number of tries for GET requests failing with 429 or 5xx. Defaults to 3
	RetryAttempts int
	// RetryDelay is the initial backoff between tries. Defaults to 500ms
	RetryDelay time.Duration
}

// Client contains credentials and methods to talk to the mod.io api
type Client struct {
	// HTTP is the internal http client
	HTTP *http.Client
	// APIUrl is the API url used. defaults to `https://api.mod.io/v1`
	APIUrl string
	GameID uint32
	APIKey string

	retryAttempts int
	retryDelay    time.Duration
	logger        *log.Logger

	mu    sync.RWMutex
	token *oauth2.Token
}

// New returns a new Client
func New(cfg Config) *Client {
	c := &Client{
		HTTP:          cfg.HTTP,
		APIUrl:        strings.TrimSuffix(cfg.BaseURL, "/"),
		GameID:        cfg.GameID,
		APIKey:        cfg.APIKey,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		logger:        cfg.Logger,
	}
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	if c.APIUrl == "" {
		c.APIUrl = cfg.Environment.URL()
	}
	if c.retryAttempts == 0 {
		c.retryAttempts = 3
	}
	if c.retryDelay == 0 {
		c.retryDelay = 500 * time.Millisecond
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// SetToken sets the OAuth token used for authenticated requests. Pass nil to log out
func (c *Client) SetToken(token *oauth2.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current OAuth token (can be nil)
func (c *Client) Token() *oauth2.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// HasToken returns true if a non expired token is set
func (c *Client) HasToken() bool {
	return c.Token().Valid()
}

// gamePath returns the path of the current game plus the given elements
func (c *Client) gamePath(elem ...string) string {
	return fmt.Sprintf("/games/%d", c.GameID) + strings.Join(elem, "")
}

// modPath returns the path of a mod of the current game plus the given elements
func (c *Client) modPath(modID uint32, elem ...string) string {
	return c.gamePath(fmt.Sprintf("/mods/%d", modID)) + strings.Join(elem, "")
}

// newRequest creates a decorated request for the given api path
func (c *Client) newRequest(ctx context.Context, method string, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.APIUrl+path, body)
	if err != nil {
		return nil, err
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	c.decorate(req)
	return req, nil
}

// decorate decorates a request with the User-Agent header and either the bearer
// token or the api key
func (c *Client) decorate(req *http.Request) {
	req.Header.Set("User-Agent", ownhttp.UserAgent)
	req.Header.Set("Accept", "application/json")

	if token := c.Token(); token.Valid() {
		token.SetAuthHeader(req)
		return
	}
	c.decorateAPIKey(req)
}

// decorateAPIKey adds the api key as a query parameter
func (c *Client) decorateAPIKey(req *http.Request) {
	query := req.URL.Query()
	query.Set("api_key", c.APIKey)
	req.URL.RawQuery = query.Encode()
}

// do executes the request and logs it
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		return nil, err
	}
	c.logger.Debug(
		"request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", res.StatusCode,
		"took", time.Since(start).Round(time.Millisecond),
	)
	return res, nil
}

// getJSON does a get request and parses the response into v.
// Transient failures (429, 5xx) are retried
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v interface{}) error {
	return ownhttp.Retry(ctx, c.retryAttempts, c.retryDelay, func() error {
		req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return err
		}
		res, err := c.do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if err := checkResponse(res); err != nil {
			if ownhttp.IsTransientStatus(res.StatusCode) {
				return &ownhttp.RetryableError{Err: err}
			}
			return err
		}
		return parseJSON(res, v)
	})
}

// sendForm sends a url encoded form and parses the response into v (if v is not nil).
// Nothing is parsed for 204 responses
func (c *Client) sendForm(ctx context.Context, method string, path string, form url.Values, v interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return c.send(req, v)
}

// send executes a prepared write request
func (c *Client) send(req *http.Request, v interface{}) error {
	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := checkResponse(res); err != nil {
		return err
	}
	if v == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return parseJSON(res, v)
}

// checkResponse converts non 2xx responses into an *Error
func checkResponse(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	errRes := errorResponse{}
	if err := parseJSON(res, &errRes); err != nil || errRes.Error.Message == "" {
		return &Error{
			Code:    res.StatusCode,
			Message: "mod.io API did respond with unexpected status " + res.Status,
		}
	}
	// the status line is the source of truth
	errRes.Error.Code = res.StatusCode
	return &errRes.Error
}

func parseJSON(res *http.Response, i interface{}) error {
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, i)
}
