// Package gate implements the password check that stands in front of every
// mutating gallery action.
//
// A Gate runs in one of three modes:
//
//   - constant: the candidate must equal a secret known to the client
//     (the shared "create new entry" password), optionally stored as a
//     bcrypt hash;
//   - remote: the endpoint's verifyPassword action decides, against the
//     per-entry owner password; any failure to get an answer counts as a
//     rejection;
//   - pass-through: nothing is checked here and the candidate is handed on
//     unchanged, so the endpoint verifies it together with the action itself.
//
// Per-entry passwords travel to the endpoint in plain text and are compared
// there. The client neither hashes nor stores them.
package gate

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/dmitrijs2005/appgallery/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

type Mode string

const (
	ModeConstant    Mode = "constant"
	ModeRemote      Mode = "remote"
	ModePassThrough Mode = "pass-through"
)

// ErrRejected is reported to the attempt callback after a failed check.
var ErrRejected = errors.New("password rejected")

// Verifier is the remote half of the gate, satisfied by client.Client.
type Verifier interface {
	VerifyPassword(ctx context.Context, id string, password string) (bool, error)
}

type Gate struct {
	mode     Mode
	constant []byte
	hash     []byte
	verifier Verifier
	entryID  string
	log      logging.Logger
}

// NewConstant checks candidates against k. An empty k rejects everything.
func NewConstant(k string) *Gate {
	return &Gate{mode: ModeConstant, constant: []byte(k), log: logging.Nop()}
}

// NewHashed checks candidates against a bcrypt hash of the constant.
func NewHashed(hash string) *Gate {
	return &Gate{mode: ModeConstant, hash: []byte(hash), log: logging.Nop()}
}

// NewRemote delegates the check for entryID to v.
func NewRemote(v Verifier, entryID string, log logging.Logger) *Gate {
	if log == nil {
		log = logging.Nop()
	}
	return &Gate{mode: ModeRemote, verifier: v, entryID: entryID, log: log}
}

// NewPassThrough accepts every candidate.
func NewPassThrough() *Gate {
	return &Gate{mode: ModePassThrough, log: logging.Nop()}
}

func (g *Gate) Mode() Mode { return g.mode }

// Check reports whether candidate passes the gate. On success the candidate
// is returned unmodified for the caller's continuation.
func (g *Gate) Check(ctx context.Context, candidate string) (string, bool) {
	switch g.mode {
	case ModeConstant:
		if g.hash != nil {
			return candidate, bcrypt.CompareHashAndPassword(g.hash, []byte(candidate)) == nil
		}
		if len(g.constant) == 0 {
			return candidate, false
		}
		return candidate, subtle.ConstantTimeCompare(g.constant, []byte(candidate)) == 1
	case ModeRemote:
		ok, err := g.verifier.VerifyPassword(ctx, g.entryID, candidate)
		if err != nil {
			g.log.Warn(ctx, "password verification failed, rejecting", "entry_id", g.entryID, "error", err)
			return candidate, false
		}
		return candidate, ok
	default:
		return candidate, true
	}
}

// Prompt drives the retry-in-place contract of a password dialog.
//
// ask is called for each attempt and receives the previous attempt's error
// (nil on the first call, ErrRejected afterwards). Returning an error from
// ask cancels the dialog and Prompt returns that error. When a candidate
// passes, onSuccess runs first and Prompt returns its result; the dialog is
// considered dismissed only then.
func (g *Gate) Prompt(ctx context.Context, ask func(prev error) (string, error), onSuccess func(password string) error) error {
	var prev error
	for {
		candidate, err := ask(prev)
		if err != nil {
			return err
		}
		if pw, ok := g.Check(ctx, candidate); ok {
			return onSuccess(pw)
		}
		prev = ErrRejected
	}
}
