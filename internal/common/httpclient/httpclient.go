// Package httpclient provides the HTTP transport pipeline shared by every
// endpoint wrapper. On the way out it attaches the session credentials and
// tenant scope to the request; on the way back it unwraps the server's
// response envelope or classifies the failure and drives the recovery side
// effects (user notification, credential invalidation, redirect to login).
// Auth, tenant scoping, and failure handling are applied uniformly and
// exactly once per call, no matter which wrapper initiates it.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/billops/billingctl/internal/common/session"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// defaultTimeout bounds every request; a call that exceeds it is
	// classified as a network failure.
	defaultTimeout = 30 * time.Second

	// defaultRedirectDelay is how long after a session-expiry notification
	// the navigation to the login entry point fires. The delay keeps the
	// notification visible before navigation replaces the view.
	defaultRedirectDelay = 1 * time.Second
)

// Notifier is the transient user-facing message surface. The pipeline emits
// exactly one notification per failed call. Implementations must not block.
type Notifier interface {
	Notify(message string)
}

// Navigator is the global navigation surface. The pipeline invokes it only
// on detected session expiry. Implementations must not block.
type Navigator interface {
	NavigateToLogin()
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

type noopNavigator struct{}

func (noopNavigator) NavigateToLogin() {}

// envelope is the wire-level wrapper every endpoint returns.
// Code zero signals success; any other value is an application-level
// failure carrying a human-readable message.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Result is what a successful call resolves to. The envelope code never
// escapes the pipeline.
type Result struct {
	Data    json.RawMessage
	Message string
}

// Decode unmarshals the result payload into v.
func (r *Result) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return jsonAPI.Unmarshal(r.Data, v)
}

// ClientOptions contains options for configuring the client.
type ClientOptions struct {
	DisableCertValidation bool          // if true, skips SSL certificate validation
	Timeout               time.Duration // per-request ceiling; default 30s
	RedirectDelay         time.Duration // delay before login navigation on session expiry
	RetryAttempts         uint          // total attempts for transient failures; 0 or 1 disables retry
}

// Client mediates every outbound call to the billing API.
type Client struct {
	serverURL     string
	creds         session.Store
	notifier      Notifier
	navigator     Navigator
	httpClient    *http.Client
	redirectDelay time.Duration
	retryAttempts uint
}

// NewClient creates a client for the given server. creds supplies the token
// and tenant attached to each request; notify and nav receive the recovery
// side effects. Nil notify or nav fall back to no-ops.
func NewClient(serverURL string, creds session.Store, notify Notifier, nav Navigator, opts ...ClientOptions) *Client {
	o := ClientOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RedirectDelay <= 0 {
		o.RedirectDelay = defaultRedirectDelay
	}
	if notify == nil {
		notify = noopNotifier{}
	}
	if nav == nil {
		nav = noopNavigator{}
	}

	httpClient := &http.Client{Timeout: o.Timeout}
	if o.DisableCertValidation {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return &Client{
		serverURL:     serverURL,
		creds:         creds,
		notifier:      notify,
		navigator:     nav,
		httpClient:    httpClient,
		redirectDelay: o.RedirectDelay,
		retryAttempts: o.RetryAttempts,
	}
}

// RequestOptions contains options for making a request.
// All fields are required except QueryParams and Body.
type RequestOptions struct {
	Method      string            // HTTP method (GET, POST, PUT, DELETE)
	Path        string            // API endpoint path
	QueryParams map[string]string // optional query parameters
	Body        []byte            // optional request body
}

// Do makes a request with the given options. On success it returns the
// unwrapped envelope payload. Every failure is classified, produces exactly
// one user notification, and is propagated to the caller; classification
// never swallows an error.
func (c *Client) Do(ctx context.Context, opts RequestOptions) (*Result, error) {
	status, body, sendErr := c.send(ctx, opts)
	return c.classify(status, body, sendErr)
}

// Get makes a GET request to the given path.
func (c *Client) Get(ctx context.Context, p string, query map[string]string) (*Result, error) {
	return c.Do(ctx, RequestOptions{
		Method:      http.MethodGet,
		Path:        p,
		QueryParams: query,
	})
}

// Post makes a POST request, marshaling body as JSON when non-nil.
func (c *Client) Post(ctx context.Context, p string, body any) (*Result, error) {
	data, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   p,
		Body:   data,
	})
}

// Put makes a PUT request, marshaling body as JSON when non-nil.
func (c *Client) Put(ctx context.Context, p string, body any) (*Result, error) {
	data, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, RequestOptions{
		Method: http.MethodPut,
		Path:   p,
		Body:   data,
	})
}

// Delete makes a DELETE request to the given path.
func (c *Client) Delete(ctx context.Context, p string) (*Result, error) {
	return c.Do(ctx, RequestOptions{
		Method: http.MethodDelete,
		Path:   p,
	})
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := jsonAPI.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return data, nil
}

// send performs the network call, retrying transient failures when the
// client was configured with a retry budget. Retry happens below the
// classification layer so a call still produces exactly one classification
// and one notification regardless of how many attempts ran.
func (c *Client) send(ctx context.Context, opts RequestOptions) (int, []byte, error) {
	if c.retryAttempts <= 1 {
		return c.sendOnce(ctx, opts)
	}

	var status int
	var body []byte
	err := retry.Do(func() error {
		var sendErr error
		status, body, sendErr = c.sendOnce(ctx, opts)
		if sendErr != nil {
			return sendErr
		}
		if status == http.StatusBadGateway || status == http.StatusServiceUnavailable {
			return fmt.Errorf("transient server status %d", status)
		}
		return nil
	}, retry.Attempts(c.retryAttempts),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("attempt", n+1).Str("path", opts.Path).Msg("retrying request")
		}))

	if status != 0 {
		// a response was received on the final attempt; classify by status
		return status, body, nil
	}
	return 0, nil, err
}

// sendOnce builds and performs a single request. Request augmentation reads
// only already-resident credential state, so it cannot block or fail the
// call. A zero status with a non-nil error means no response was received.
func (c *Client) sendOnce(ctx context.Context, opts RequestOptions) (int, []byte, error) {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid server URL: %v", err)
	}
	u.Path = path.Join(u.Path, opts.Path)

	q := u.Query()
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), bytes.NewBuffer(opts.Body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Headers are set from the store at send time; a credential rotation
	// while this request is in flight does not affect it.
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tenant := c.creds.Tenant(); tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %v", err)
	}

	return resp.StatusCode, body, nil
}

// classify maps the raw outcome of a call to the failure taxonomy and runs
// the recovery side effect for the class. The precedence is a total order:
// transport failure first, then HTTP status, then the envelope code. Exactly
// one branch executes per call.
func (c *Client) classify(status int, body []byte, sendErr error) (*Result, error) {
	if sendErr != nil {
		log.Debug().Err(sendErr).Msg("transport failure")
		c.notifier.Notify(msgNetworkFailure)
		return nil, ErrNetwork.Err(sendErr)
	}

	switch {
	case status == http.StatusUnauthorized:
		// notify before navigating so the message is visible; the store is
		// cleared immediately so no further request carries the dead token
		c.notifier.Notify(msgSessionExpired)
		if err := c.creds.Clear(); err != nil {
			log.Error().Err(err).Msg("failed to clear session")
		}
		time.AfterFunc(c.redirectDelay, c.navigator.NavigateToLogin)
		return nil, ErrUnauthorized

	case status == http.StatusForbidden:
		c.notifier.Notify(msgAccessDenied)
		return nil, ErrForbidden

	case status == http.StatusNotFound:
		c.notifier.Notify(msgNotFound)
		return nil, ErrNotFound

	case status == http.StatusInternalServerError:
		c.notifier.Notify(msgServerError)
		return nil, ErrServer

	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		c.notifier.Notify(msgUnavailable)
		return nil, ErrUnavailable

	case status < 200 || status >= 300:
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = msgRequestFailed
		}
		c.notifier.Notify(msg)
		return nil, ErrApplication.Msg(msg).SetStatusCode(status)
	}

	var env envelope
	if err := jsonAPI.Unmarshal(body, &env); err != nil {
		log.Debug().Err(err).Msg("failed to decode response envelope")
		c.notifier.Notify(msgInvalidResponse)
		return nil, ErrApplication.MsgErr(msgInvalidResponse, err)
	}

	if env.Code != 0 {
		msg := env.Message
		if msg == "" {
			msg = msgRequestFailed
		}
		c.notifier.Notify(msg)
		return nil, ErrApplication.Msg(msg)
	}

	return &Result{Data: env.Data, Message: env.Message}, nil
}
