package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Option mutates the Client during New().
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client. Useful for setting transport
// timeouts, tracing, custom TLS settings, etc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithCredentials wires the credential store used for the Authorization
// header, the 401 auto-clear, and the token writes on account creation.
// Without it the client operates anonymously.
func WithCredentials(cs CredentialStore) Option {
	return func(c *Client) error {
		if cs == nil {
			return fmt.Errorf("nil credential store")
		}
		c.creds = cs
		return nil
	}
}

// WithFingerprint wires the anonymous device identifier attached to every
// request. Reactions and account creation fail server-side without one.
func WithFingerprint(fp FingerprintSource) Option {
	return func(c *Client) error {
		if fp == nil {
			return fmt.Errorf("nil fingerprint source")
		}
		c.fp = fp
		return nil
	}
}

// WithRateLimit throttles outbound requests to rps with the given burst.
// A polite-client guard for scripted use; the server still enforces its own
// limits via 429.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rate limit requires positive rps and burst")
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

// WithDebugLogging wraps the client's transport such that every
// request/response is logged when `enabled` is true.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}
