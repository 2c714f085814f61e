package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billops/billingctl/internal/common/session"
)

// uiRecorder records notification and navigation side effects in the order
// they happened, standing in for the real user-facing surface.
type uiRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *uiRecorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "notify:"+message)
}

func (r *uiRecorder) NavigateToLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "navigate")
}

func (r *uiRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func envelopeHandler(code int, message string, data string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := `{"code":` + strconv.Itoa(code) + `,"message":"` + message + `"`
		if data != "" {
			body += `,"data":` + data
		}
		body += `}`
		w.Write([]byte(body))
	}
}

func TestSuccessUnwrapsEnvelope(t *testing.T) {
	var gotAuth, gotTenant, gotContentType, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTenant = r.Header.Get("X-Tenant-ID")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		envelopeHandler(0, "ok", `{"x":1}`)(w, r)
	}))
	defer srv.Close()

	creds := session.NewMemStore()
	require.NoError(t, creds.SetSession("tok-123", "tenant-9"))
	ui := &uiRecorder{}
	client := NewClient(srv.URL, creds, ui, ui)

	res, err := client.Get(context.Background(), "/api/v1/orders", nil)
	require.NoError(t, err)

	assert.Equal(t, "ok", res.Message)
	var payload struct {
		X int `json:"x"`
	}
	require.NoError(t, res.Decode(&payload))
	assert.Equal(t, 1, payload.X)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "tenant-9", gotTenant)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)

	assert.Empty(t, ui.Events(), "success must not notify")
}

func TestHeadersOmittedWhenLoggedOut(t *testing.T) {
	var hasAuth, hasTenant bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, hasTenant = r.Header["X-Tenant-Id"]
		envelopeHandler(0, "ok", `null`)(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, session.NewMemStore(), nil, nil)
	_, err := client.Get(context.Background(), "/api/v1/tenants", nil)
	require.NoError(t, err)

	assert.False(t, hasAuth, "no Authorization header without a token")
	assert.False(t, hasTenant, "no X-Tenant-ID header without a tenant")
}

func TestApplicationError(t *testing.T) {
	srv := httptest.NewServer(envelopeHandler(5, "insufficient balance", "null"))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui)

	_, err := client.Post(context.Background(), "/api/v1/payments", map[string]string{"order_id": "o1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrApplication)
	assert.Equal(t, "insufficient balance", err.Error())

	assert.Equal(t, []string{"notify:insufficient balance"}, ui.Events())
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := session.NewMemStore()
	require.NoError(t, creds.SetSession("tok-123", "tenant-9"))
	ui := &uiRecorder{}
	client := NewClient(srv.URL, creds, ui, ui, ClientOptions{RedirectDelay: 20 * time.Millisecond})

	_, err := client.Get(context.Background(), "/api/v1/orders", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// credentials are cleared immediately
	assert.Empty(t, creds.Token())
	assert.Empty(t, creds.Tenant())

	// notification fires first, navigation only after the delay
	assert.Equal(t, []string{"notify:" + msgSessionExpired}, ui.Events())
	require.Eventually(t, func() bool {
		ev := ui.Events()
		return len(ev) == 2 && ev[1] == "navigate"
	}, time.Second, 5*time.Millisecond)
}

// A request already in flight keeps the headers it was sent with; the
// credential clear triggered by a concurrent 401 affects only requests
// initiated afterwards.
func TestCredentialClearDoesNotAffectInFlightRequest(t *testing.T) {
	var mu sync.Mutex
	var slowAuth string
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		slowAuth = r.Header.Get("Authorization")
		mu.Unlock()
		<-release
		envelopeHandler(0, "ok", `null`)(w, r)
	})
	mux.HandleFunc("/expired", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/after", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Header.Get("Authorization") != "" {
			t.Error("request after credential clear must not carry a token")
		}
		envelopeHandler(0, "ok", `null`)(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := session.NewMemStore()
	require.NoError(t, creds.SetSession("tok-123", "tenant-9"))
	ui := &uiRecorder{}
	client := NewClient(srv.URL, creds, ui, ui, ClientOptions{RedirectDelay: time.Millisecond})

	done := make(chan error, 1)
	go func() {
		_, err := client.Get(context.Background(), "/slow", nil)
		done <- err
	}()

	// wait until the slow request has been sent with the old token
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return slowAuth != ""
	}, time.Second, 5*time.Millisecond)

	_, err := client.Get(context.Background(), "/expired", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, creds.Token())

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	assert.Equal(t, "Bearer tok-123", slowAuth)
	mu.Unlock()

	_, err = client.Get(context.Background(), "/after", nil)
	require.NoError(t, err)
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
		notice  string
	}{
		{http.StatusForbidden, ErrForbidden, msgAccessDenied},
		{http.StatusNotFound, ErrNotFound, msgNotFound},
		{http.StatusInternalServerError, ErrServer, msgServerError},
		{http.StatusBadGateway, ErrUnavailable, msgUnavailable},
		{http.StatusServiceUnavailable, ErrUnavailable, msgUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			creds := session.NewMemStore()
			require.NoError(t, creds.SetSession("tok", "tenant"))
			ui := &uiRecorder{}
			client := NewClient(srv.URL, creds, ui, ui)

			_, err := client.Get(context.Background(), "/api/v1/orders", nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{"notify:" + tt.notice}, ui.Events())

			// only session expiry touches the credentials
			assert.Equal(t, "tok", creds.Token())
			assert.Equal(t, "tenant", creds.Tenant())
		})
	}
}

func TestUnlistedStatusUsesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":7,"message":"bad argument","data":null}`))
	}))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui)

	_, err := client.Get(context.Background(), "/api/v1/orders", nil)
	assert.ErrorIs(t, err, ErrApplication)
	assert.Equal(t, "bad argument", err.Error())
	assert.Equal(t, []string{"notify:bad argument"}, ui.Events())
}

func TestUnlistedStatusWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui)

	_, err := client.Get(context.Background(), "/api/v1/orders", nil)
	assert.ErrorIs(t, err, ErrApplication)
	assert.Equal(t, []string{"notify:" + msgRequestFailed}, ui.Events())
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := srv.URL
	srv.Close()

	creds := session.NewMemStore()
	require.NoError(t, creds.SetSession("tok", "tenant"))
	ui := &uiRecorder{}
	client := NewClient(serverURL, creds, ui, ui)

	_, err := client.Get(context.Background(), "/api/v1/orders", nil)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, []string{"notify:" + msgNetworkFailure}, ui.Events())

	// connection failure never mutates credentials
	assert.Equal(t, "tok", creds.Token())
	assert.Equal(t, "tenant", creds.Tenant())
}

func TestTimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui, ClientOptions{Timeout: 50 * time.Millisecond})

	_, err := client.Get(context.Background(), "/api/v1/orders", nil)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, []string{"notify:" + msgNetworkFailure}, ui.Events())
}

func TestInvalidEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui)

	_, err := client.Get(context.Background(), "/api/v1/orders", nil)
	assert.ErrorIs(t, err, ErrApplication)
	assert.Equal(t, []string{"notify:" + msgInvalidResponse}, ui.Events())
}

func TestRetryRecoversTransientFailure(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		envelopeHandler(0, "ok", `null`)(w, r)
	}))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui, ClientOptions{RetryAttempts: 3})

	res, err := client.Get(context.Background(), "/api/v1/orders", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Message)

	mu.Lock()
	assert.Equal(t, 3, calls)
	mu.Unlock()
	assert.Empty(t, ui.Events(), "recovered call must not notify")
}

func TestRetryExhaustionClassifiesOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui, ClientOptions{RetryAttempts: 2})

	_, err := client.Get(context.Background(), "/api/v1/orders", nil)
	assert.ErrorIs(t, err, ErrUnavailable)

	mu.Lock()
	assert.Equal(t, 2, calls)
	mu.Unlock()
	assert.Equal(t, []string{"notify:" + msgUnavailable}, ui.Events())
}

func TestRetryDoesNotRepeatNonTransientFailures(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui, ClientOptions{RetryAttempts: 3})

	_, err := client.Get(context.Background(), "/api/v1/orders", nil)
	assert.ErrorIs(t, err, ErrForbidden)

	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}

func TestDoesNotWrapErrorsAcrossCalls(t *testing.T) {
	srv := httptest.NewServer(envelopeHandler(1, "first failure", "null"))
	defer srv.Close()

	ui := &uiRecorder{}
	client := NewClient(srv.URL, session.NewMemStore(), ui, ui)

	_, err1 := client.Get(context.Background(), "/a", nil)
	_, err2 := client.Get(context.Background(), "/b", nil)
	require.Error(t, err1)
	require.Error(t, err2)
	assert.NotSame(t, err1, err2)
	assert.False(t, errors.Is(err1, err2))
}
