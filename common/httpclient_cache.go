// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package common

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// WrapHTTPClient installs wrap in front of the client's current transport.
func WrapHTTPClient(client *http.Client, wrap func(req *http.Request, next http.RoundTripper) (*http.Response, error)) {
	if client == nil {
		return
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	client.Transport = roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return wrap(req, base)
	})
}

// NewEvidenceHTTPClient returns a traced client with a per request timeout.
// A non nil memo deduplicates identical GETs within the process lifetime.
func NewEvidenceHTTPClient(timeout time.Duration, memo *MemoTransport) *http.Client {
	client := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	if memo != nil {
		WrapHTTPClient(client, memo.Handler())
	}
	return client
}

// MemoTransport keeps successful GET responses in an expiring LRU. It sits
// below the evidence cache and only saves repeated downloads of shared
// resources such as the KEV catalog when several products are assessed.
type MemoTransport struct {
	cache *expirable.LRU[string, []byte]
	hits  atomic.Int64
}

func NewMemoTransport(size int, expiration time.Duration) *MemoTransport {
	return &MemoTransport{
		cache: expirable.NewLRU[string, []byte](size, nil, expiration),
	}
}

func (c *MemoTransport) Hits() int64 {
	return c.hits.Load()
}

func (c *MemoTransport) Handler() func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	return func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
		if req.Method != http.MethodGet {
			return next.RoundTrip(req)
		}

		key := memoKey(req)

		if val, ok := c.cache.Get(key); ok {
			c.hits.Add(1)
			slog.Debug("http memo hit", "url", req.URL.String())
			return responseFromBytes(val, req)
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			return resp, err
		}

		// only successful responses are kept
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return resp, nil
		}

		v, err := httputil.DumpResponse(resp, true)
		if err != nil {
			slog.Warn("could not dump response", "err", err)
			return resp, nil
		}

		c.cache.Add(key, v)

		return responseFromBytes(v, req)
	}
}

func responseFromBytes(v []byte, req *http.Request) (*http.Response, error) {
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(v)), req)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp, nil
}

// memoKey separates responses fetched with different credentials.
func memoKey(req *http.Request) string {
	key := req.URL.String()

	apiKey := req.Header.Get("apiKey")
	auth := req.Header.Get("Authorization")
	if apiKey == "" && auth == "" {
		return key
	}

	h := sha256.New()
	h.Write([]byte(key))
	h.Write([]byte(apiKey))
	h.Write([]byte(auth))
	return fmt.Sprintf("%x", h.Sum(nil))
}
