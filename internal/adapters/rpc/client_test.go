package rpc_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/internal/adapters/rpc"
	"go.trai.ch/moveiface/internal/core/domain"
)

const moduleMap = `{"coin":{"fileFormatVersion":6,"address":"0x2","name":"coin","structs":{},"exposedFunctions":{}}}`

var pkgID = domain.MustParsePackageID("0x2")

func newClient(t *testing.T, url string, mutate func(*domain.RPCConfig)) *rpc.Client {
	t.Helper()
	cfg := domain.RPCConfig{
		Enabled:   true,
		URL:       url,
		Timeout:   time.Second,
		Retries:   2,
		Backoff:   time.Millisecond,
		CacheSize: 8,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := rpc.NewClient(&cfg, nil)
	require.NoError(t, err)
	return c
}

func TestClient_Success(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)

		var req struct {
			JSONRPC string   `json:"jsonrpc"`
			Method  string   `json:"method"`
			Params  []string `json:"params"`
		}
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, rpc.MethodNormalizedModules, req.Method)
		assert.Equal(t, []string{pkgID.String()}, req.Params)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":`+moduleMap+`}`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, nil)

	raw, err := c.NormalizedModules(context.Background(), pkgID)
	require.NoError(t, err)
	assert.JSONEq(t, moduleMap, string(raw))

	again, err := c.NormalizedModules(context.Background(), pkgID)
	require.NoError(t, err)
	assert.Equal(t, raw, again)
	assert.Equal(t, int32(1), calls.Load(), "second call is served from the cache")
}

func TestClient_CacheDisabled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":`+moduleMap+`}`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, func(cfg *domain.RPCConfig) { cfg.CacheSize = 0 })
	for range 2 {
		_, err := c.NormalizedModules(context.Background(), pkgID)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":`+moduleMap+`}`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, nil)
	raw, err := c.NormalizedModules(context.Background(), pkgID)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		sentinel error
		calls    int32
	}{
		{
			name: "rate limited after retries",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			sentinel: domain.ErrRPCRateLimited,
			calls:    3,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			sentinel: domain.ErrRPCNetwork,
			calls:    3,
		},
		{
			name: "package does not exist",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Package object does not exist with ID 0x2"}}`)
			},
			sentinel: domain.ErrRPCNotFound,
			calls:    1,
		},
		{
			name: "rpc error object",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"internal"}}`)
			},
			sentinel: domain.ErrRPCMalformed,
			calls:    1,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `<html>`)
			},
			sentinel: domain.ErrRPCMalformed,
			calls:    1,
		},
		{
			name: "result is not an object",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":[]}`)
			},
			sentinel: domain.ErrRPCMalformed,
			calls:    1,
		},
		{
			name: "slow endpoint",
			handler: func(_ http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			sentinel: domain.ErrRPCTimeout,
			calls:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			c := newClient(t, srv.URL, func(cfg *domain.RPCConfig) { cfg.Timeout = 100 * time.Millisecond })
			raw, err := c.NormalizedModules(context.Background(), pkgID)

			require.ErrorIs(t, err, tt.sentinel)
			assert.Nil(t, raw)
			assert.Equal(t, tt.calls, calls.Load())
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newClient(t, url, func(cfg *domain.RPCConfig) { cfg.Retries = 1 })
	_, err := c.NormalizedModules(context.Background(), pkgID)
	require.ErrorIs(t, err, domain.ErrRPCNetwork)
}

func TestClient_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newClient(t, srv.URL, nil)
	_, err := c.NormalizedModules(ctx, pkgID)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFactory(t *testing.T) {
	remote, err := rpc.NewFactory().NewRemote(&domain.RPCConfig{URL: "http://127.0.0.1:1", CacheSize: 4})
	require.NoError(t, err)
	assert.IsType(t, &rpc.Client{}, remote)
}
