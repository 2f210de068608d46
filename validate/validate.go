// Package validate checks runtime configuration before the server or the
// client starts, so misconfiguration fails fast with a clear message
// instead of surfacing as a confusing network error later.
package validate

import (
	"fmt"
	"net/url"
	"strings"
)

// Addr validates a listen host and port.
func Addr(host string, port int) error {
	if strings.TrimSpace(host) == "" {
		return fmt.Errorf("listen host cannot be empty")
	}
	if strings.ContainsAny(host, " /") {
		return fmt.Errorf("invalid listen host %q", host)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("listen port must be in 1..65535, got %d", port)
	}
	return nil
}

// ServerURL validates a websocket endpoint URL for the client.
func ServerURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("server URL must use ws:// or wss://, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("server URL %q has no host", raw)
	}
	return nil
}
