// Package netx wraps the plumbing shared by every call to the Remote Action
// Endpoint: execute the request, read the body as text, classify failures.
package netx

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTransport marks failures below the application protocol: dial, TLS,
// reset connections, truncated bodies.
var ErrTransport = errors.New("transport failure")

// DoText executes req and returns the full response body.
//
// Non-2xx statuses are reported as ErrTransport together with a body excerpt,
// since the endpoint speaks its own success flag inside 200 responses.
func DoText(hc *http.Client, req *http.Request) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s; body: %s", ErrTransport, resp.Status, excerpt(body, 200))
	}
	return body, nil
}

func excerpt(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
