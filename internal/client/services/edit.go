package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/gate"
	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/common"
	"github.com/dmitrijs2005/appgallery/internal/logging"
)

// Edit changes the four free-text fields of one entry. Images and the
// owner password cannot be changed here.
type Edit struct {
	client    client.Client
	entry     models.Entry
	gate      *gate.Gate
	log       logging.Logger
	onSuccess func(context.Context)

	unlocked   atomic.Bool
	submitting atomic.Bool
}

func newEdit(c client.Client, entry models.Entry, log logging.Logger, onSuccess func(context.Context)) *Edit {
	return &Edit{
		client:    c,
		entry:     entry,
		gate:      gate.NewRemote(c, entry.ID, log),
		log:       log,
		onSuccess: onSuccess,
	}
}

// Gate is the remote-mode gate for the entry's owner password.
func (e *Edit) Gate() *gate.Gate { return e.gate }

// Unlock checks password with the endpoint and, when it passes, allows
// Submit.
func (e *Edit) Unlock(ctx context.Context, password string) bool {
	if _, ok := e.gate.Check(ctx, password); !ok {
		return false
	}
	e.unlocked.Store(true)
	return true
}

// Grant unlocks the edit on the strength of an earlier successful check,
// such as a signed unlock cookie scoped to this entry.
func (e *Edit) Grant() { e.unlocked.Store(true) }

// Form returns the pre-filled edit form.
func (e *Edit) Form() models.Fields { return e.entry.Fields() }

func (e *Edit) Submitting() bool { return e.submitting.Load() }

// Submit sends one update carrying the entry id and the new fields.
func (e *Edit) Submit(ctx context.Context, fields models.Fields) (string, error) {
	if !e.unlocked.Load() {
		return "", ErrLocked
	}
	if !e.submitting.CompareAndSwap(false, true) {
		return "", ErrSubmissionInProgress
	}
	defer e.submitting.Store(false)

	if err := fields.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	msg, err := e.client.Update(ctx, e.entry.ID, fields)
	if err != nil {
		e.log.Warn(ctx, "update failed", "entry_id", e.entry.ID, "error", err)
		return "", err
	}

	e.log.Info(ctx, "entry updated", "entry_id", e.entry.ID)
	if e.onSuccess != nil {
		e.onSuccess(ctx)
	}
	return msg, nil
}
