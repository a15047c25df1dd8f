package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

const pingTimeout = 1500 * time.Millisecond

// PingService probes the TCP endpoint behind a service URL. It tells
// reachability apart from application-level failure before a client is built.
func PingService(serviceURL string, timeout time.Duration) error {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid service URL %q: %w", serviceURL, err)
	}

	port := u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	addr := net.JoinHostPort(u.Hostname(), port)
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("service unreachable at %s: %w", addr, err)
	}
	return conn.Close()
}

// PingAuthorizer probes the Authorizer endpoint with the default timeout.
func PingAuthorizer(authzURL string) error {
	return PingService(authzURL, pingTimeout)
}
