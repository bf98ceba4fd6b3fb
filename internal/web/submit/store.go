// Package submit tracks one-time form submission tokens.
//
// Every mutating form the web front-end renders carries a fresh token. A
// handler claims the token before calling the endpoint; a second request
// with the same token, concurrent or later, fails to claim it. When the
// workflow fails the handler releases the token so the same form can be
// sent again.
package submit

import (
	"context"
	"errors"
	"time"
)

var ErrAlreadyClaimed = errors.New("submission token already claimed")

type TokenStore interface {
	// Claim marks token as used for ttl. It returns ErrAlreadyClaimed when
	// the token is held already.
	Claim(ctx context.Context, token string, ttl time.Duration) error
	// Release frees a claimed token.
	Release(ctx context.Context, token string) error
	Close() error
}
