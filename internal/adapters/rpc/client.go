// Package rpc implements the Sui fullnode JSON-RPC client used for remote normalization.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/gjson"
	"go.trai.ch/moveiface/internal/core/domain"
)

// MethodNormalizedModules is the JSON-RPC method returning every normalized module of a package.
const MethodNormalizedModules = "sui_getNormalizedMoveModulesByPackage"

// maxBackoff caps the delay between two attempts.
const maxBackoff = 30 * time.Second

// Client implements ports.RemoteNormalizer over JSON-RPC 2.0.
type Client struct {
	url     string
	http    *http.Client
	timeout time.Duration
	retries int
	backoff time.Duration
	cache   *lru.Cache[domain.PackageID, domain.RawRemotePackage]
	nextID  atomic.Uint64
}

// NewClient creates a Client. A zero cache size disables caching.
func NewClient(cfg *domain.RPCConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		url:     cfg.URL,
		http:    httpClient,
		timeout: cfg.Timeout,
		retries: cfg.Retries,
		backoff: cfg.Backoff,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[domain.PackageID, domain.RawRemotePackage](cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// attemptError carries whether a failed attempt may be retried and how long
// the server asked us to wait.
type attemptError struct {
	err        error
	retryable  bool
	retryAfter time.Duration
}

// NormalizedModules implements ports.RemoteNormalizer.
func (c *Client) NormalizedModules(ctx context.Context, id domain.PackageID) (domain.RawRemotePackage, error) {
	if c.cache != nil {
		if raw, ok := c.cache.Get(id); ok {
			return raw, nil
		}
	}

	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  MethodNormalizedModules,
		Params:  []any{id.String()},
	})
	if err != nil {
		return nil, domain.WrapFault(domain.ErrRPCMalformed, err, "encode request")
	}

	var last *attemptError
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.delay(attempt, last.retryAfter)); err != nil {
				return nil, err
			}
		}
		raw, aerr := c.attempt(ctx, body)
		if aerr == nil {
			if c.cache != nil {
				c.cache.Add(id, raw)
			}
			return raw, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		last = aerr
		if !aerr.retryable {
			break
		}
	}
	return nil, last.err
}

func (c *Client) attempt(ctx context.Context, body []byte) (domain.RawRemotePackage, *attemptError) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &attemptError{err: domain.WrapFault(domain.ErrRPCNetwork, err, "build request")}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &attemptError{err: domain.NewFault(domain.ErrRPCTimeout, "after %s", c.timeout)}
		}
		return nil, &attemptError{err: domain.WrapFault(domain.ErrRPCNetwork, err, "post %s", c.url), retryable: true}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &attemptError{err: domain.NewFault(domain.ErrRPCTimeout, "reading response after %s", c.timeout)}
		}
		return nil, &attemptError{err: domain.WrapFault(domain.ErrRPCNetwork, err, "read response"), retryable: true}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &attemptError{
			err:        domain.NewFault(domain.ErrRPCRateLimited, "http %d", resp.StatusCode),
			retryable:  true,
			retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &attemptError{err: domain.NewFault(domain.ErrRPCNetwork, "http %d", resp.StatusCode), retryable: true}
	case resp.StatusCode != http.StatusOK:
		return nil, &attemptError{err: domain.NewFault(domain.ErrRPCMalformed, "http %d", resp.StatusCode)}
	}

	return decode(payload)
}

// decode extracts the result of a JSON-RPC response envelope.
func decode(payload []byte) (domain.RawRemotePackage, *attemptError) {
	if !gjson.ValidBytes(payload) {
		return nil, &attemptError{err: domain.NewFault(domain.ErrRPCMalformed, "response is not valid JSON")}
	}
	envelope := gjson.ParseBytes(payload)

	if rpcErr := envelope.Get("error"); rpcErr.Exists() && rpcErr.Type != gjson.Null {
		code, msg := rpcErr.Get("code").Int(), rpcErr.Get("message").String()
		lower := strings.ToLower(msg)
		switch {
		case strings.Contains(lower, "not exist") || strings.Contains(lower, "not found"):
			return nil, &attemptError{err: domain.NewFault(domain.ErrRPCNotFound, "code %d: %s", code, msg)}
		case code == http.StatusTooManyRequests || strings.Contains(lower, "rate limit"):
			return nil, &attemptError{err: domain.NewFault(domain.ErrRPCRateLimited, "code %d: %s", code, msg), retryable: true}
		default:
			return nil, &attemptError{err: domain.NewFault(domain.ErrRPCMalformed, "code %d: %s", code, msg)}
		}
	}

	result := envelope.Get("result")
	if !result.IsObject() {
		return nil, &attemptError{err: domain.NewFault(domain.ErrRPCMalformed, "result is not a module map")}
	}
	return domain.RawRemotePackage(result.Raw), nil
}

func (c *Client) delay(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return min(retryAfter, maxBackoff)
	}
	d := c.backoff
	for range attempt - 1 {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
