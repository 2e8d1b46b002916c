package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	events "MoveDesk/internal/Events"
)

const (
	// DefaultTimeout bounds a single physical attempt.
	DefaultTimeout = 30 * time.Second
	// DefaultRetryDelay separates consecutive attempts of one logical call.
	DefaultRetryDelay = time.Second
	// maxAttempts is the total attempt budget: one initial try plus two retries.
	maxAttempts = 3

	maxErrorBodyLen = 512
)

// CredentialStore supplies and tears down the stored session tokens.
type CredentialStore interface {
	AccessToken() string
	RefreshToken() string
	Save(access, refresh string) error
	// Clear removes the stored tokens and reports whether any were present.
	Clear() bool
}

// Config assembles a Client. Zero fields fall back to sane defaults.
type Config struct {
	BaseURL     string
	Credentials CredentialStore
	Bus         *events.Bus
	Logger      *slog.Logger
	HTTPClient  *http.Client
	Timeout     time.Duration
	CacheTTL    time.Duration
	RetryDelay  time.Duration
	RateLimit   rate.Limit
	RateBurst   int
}

// Client is the single pipeline every endpoint wrapper goes through. It owns
// the response cache and the session teardown path; there are no package-level
// singletons, so independent clients never share state.
type Client struct {
	baseURL    string
	http       *http.Client
	creds      CredentialStore
	bus        *events.Bus
	log        *slog.Logger
	cache      *responseCache
	limiter    *rate.Limiter
	timeout    time.Duration
	retryDelay time.Duration
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = rate.Limit(20)
	}

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 40
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		http:       httpClient,
		creds:      cfg.Credentials,
		bus:        cfg.Bus,
		log:        logger,
		cache:      newResponseCache(cfg.CacheTTL),
		limiter:    rate.NewLimiter(limit, burst),
		timeout:    timeout,
		retryDelay: retryDelay,
	}
}

// BaseURL returns the resolved API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Request performs one logical call: cache lookup for reads, then up to
// maxAttempts physical attempts with a fixed delay between them. Writes carry
// a stable idempotency key across attempts and invalidate cached reads under
// the same path on success.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, opts *RequestOptions) (*Envelope, error) {
	requestID := uuid.NewString()
	reqLog := c.log.With(
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("endpoint", endpoint),
	)

	key := cacheKey(method, endpoint)
	cacheable := method == http.MethodGet && !opts.skipCache()
	if cacheable {
		if raw, ok := c.cache.Get(key); ok {
			reqLog.Debug("serving response from cache")
			return decodeEnvelope(raw)
		}
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshal request body")
		}
	}

	idemKey := ""
	if method != http.MethodGet {
		idemKey = uuid.NewString()
	}

	timeout := opts.timeoutOr(c.timeout)
	started := time.Now()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), "request canceled")
			case <-time.After(c.retryDelay):
			}
		}

		env, raw, err := c.do(ctx, method, endpoint, payload, opts, idemKey, requestID, timeout)
		if err == nil {
			if cacheable {
				c.cache.Set(key, raw)
			}
			if method != http.MethodGet {
				// Drop stale reads for the resource that was just written.
				c.cache.InvalidatePrefix(pathOnly(endpoint))
			}
			reqLog.Debug("request succeeded",
				slog.Int("attempt", attempt),
				slog.Int64("duration_ms", time.Since(started).Milliseconds()))
			return env, nil
		}

		lastErr = err
		if !retryable(err) {
			break
		}
		reqLog.Warn("transient request failure",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}

	reqLog.Error("request failed",
		slog.Int64("duration_ms", time.Since(started).Milliseconds()),
		slog.String("error", lastErr.Error()))
	return nil, lastErr
}

// do runs one physical attempt, bounded by its own timeout.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, opts *RequestOptions, idemKey, requestID string, timeout time.Duration) (*Envelope, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(attemptCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, timeoutError(err)
		}
		return nil, nil, errors.Wrap(err, "rate limiter")
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}
	if c.creds != nil {
		if token := c.creds.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for name, value := range opts.headers() {
		req.Header.Set(name, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, classifyTransportError(ctx, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession()
	}

	raw = bytes.TrimSpace(raw)
	env := &Envelope{}
	parseErr := error(nil)
	if len(raw) > 0 {
		parseErr = json.Unmarshal(raw, env)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := env.FailureMessage()
		if parseErr != nil || message == "" {
			message = truncate(string(raw), maxErrorBodyLen)
		}
		details := ""
		if env.Error != "" && env.Message != "" {
			details = env.Message
		}
		return nil, nil, httpError(resp.StatusCode, message, details)
	}

	if parseErr != nil {
		return nil, nil, protocolError(parseErr)
	}
	if len(raw) == 0 {
		env.Success = true
	}

	return env, raw, nil
}

// Get issues a cached read.
func (c *Client) Get(ctx context.Context, endpoint string, opts *RequestOptions) (*Envelope, error) {
	return c.Request(ctx, http.MethodGet, endpoint, nil, opts)
}

// Post issues an uncached write.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Request(ctx, http.MethodPost, endpoint, body, nil)
}

// Put issues an uncached update.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Request(ctx, http.MethodPut, endpoint, body, nil)
}

// Delete issues an uncached delete.
func (c *Client) Delete(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, nil)
}

// expireSession tears the stored session down and broadcasts the expiry once.
// Concurrent 401s race on Clear, which only reports true for the caller that
// actually removed the tokens.
func (c *Client) expireSession() {
	if c.creds == nil {
		return
	}
	if c.creds.Clear() {
		c.log.Warn("session rejected by server, credentials cleared")
		if c.bus != nil {
			c.bus.Publish(events.EventUnauthorized)
		}
	}
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return errors.Wrap(err, "request canceled")
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return timeoutError(err)
	}

	return networkError(err)
}

func retryable(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Retryable()
}

func decodeEnvelope(raw []byte) (*Envelope, error) {
	env := &Envelope{}
	if len(raw) == 0 {
		env.Success = true
		return env, nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, protocolError(err)
	}
	return env, nil
}

func pathOnly(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
