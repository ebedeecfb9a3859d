// Package client is the Go SDK for the Showcase project-gallery API. It
// wraps every call with credential and fingerprint headers and funnels every
// failure through a single classifier, so callers only ever observe
// *APIError, never a raw transport error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/showcase/showcase-client/auth"
)

const (
	fingerprintHeader = "X-Browser-Fingerprint"
	defaultTimeout    = 15 * time.Second
)

// CredentialStore is the credential/profile persistence the client needs:
// reading the bearer token for the Authorization header, clearing it on 401,
// and storing the token and parent summary returned by account creation.
// *auth.TokenStore satisfies it.
type CredentialStore interface {
	Credential() string
	SetCredential(token string)
	ClearCredential()
	SetProfile(p auth.Profile)
	Profile() (auth.Profile, bool)
}

// FingerprintSource supplies the anonymous device identifier attached to
// every request. *auth.FingerprintProvider satisfies it.
type FingerprintSource interface {
	Fingerprint() string
}

// --------------------------------------------------------------------
// debugTransport – optional HTTP round-trip logger
// --------------------------------------------------------------------

type debugTransport struct{ base http.RoundTripper }

func debugEnabled() bool {
	return os.Getenv("SHOWCASE_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if debugEnabled() {
		if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if debugEnabled() {
			log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if debugEnabled() {
		if respDump, err := httputil.DumpResponse(resp, true); err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the Showcase gallery backend. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialStore
	fp      FingerprintSource
	limiter *rate.Limiter
}

// New constructs a Client for the given base URL (ending in /projects) with
// optional functional arguments.
func New(base string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}

	// Auto-enable debug via env variable without changing code.
	if debugEnabled() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	return c
}

// do performs one API call: build the request, attach identity headers,
// execute, classify any failure, decode a 2xx body into out. path is
// relative to the base URL and must start with "/".
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if tok := c.creds.Credential(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if c.fp != nil {
		if fp := c.fp.Fingerprint(); fp != "" {
			req.Header.Set(fingerprintHeader, fp)
		}
	}

	requestsTotal.WithLabelValues(method).Inc()
	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		errorsTotal.WithLabelValues(string(apiErr.Kind)).Inc()
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("network error")
		return apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := classifyTransport(err)
		errorsTotal.WithLabelValues(string(apiErr.Kind)).Inc()
		return apiErr
	}

	if resp.StatusCode >= 400 {
		apiErr := classifyResponse(resp.StatusCode, raw, path, resp.Header.Get("Retry-After"))
		if apiErr.Kind == KindAuth && c.creds != nil {
			// Invalid credential: drop it (and the companion profile) so the
			// next action starts from a clean anonymous state.
			log.Warn().Str("path", path).Msg("authentication failed, clearing stored credential")
			c.creds.ClearCredential()
		}
		errorsTotal.WithLabelValues(string(apiErr.Kind)).Inc()
		log.Error().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("kind", string(apiErr.Kind)).
			Msg(apiErr.Message)
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &APIError{
				Status:      resp.StatusCode,
				Kind:        KindUnknown,
				Message:     "malformed response body: " + err.Error(),
				UserMessage: "Something went wrong",
				Details:     json.RawMessage(raw),
			}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
