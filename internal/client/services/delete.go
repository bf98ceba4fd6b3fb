package services

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/gate"
	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/logging"
)

// Delete removes one entry. The password is not checked locally; it goes
// to the endpoint with the request, which alone decides.
type Delete struct {
	client    client.Client
	entry     models.Entry
	gate      *gate.Gate
	log       logging.Logger
	onSuccess func(context.Context)

	submitting atomic.Bool
}

func newDelete(c client.Client, entry models.Entry, log logging.Logger, onSuccess func(context.Context)) *Delete {
	return &Delete{
		client:    c,
		entry:     entry,
		gate:      gate.NewPassThrough(),
		log:       log,
		onSuccess: onSuccess,
	}
}

// Gate is the pass-through gate collecting the password.
func (d *Delete) Gate() *gate.Gate { return d.gate }

func (d *Delete) Submitting() bool { return d.submitting.Load() }

// Submit sends password unmodified together with the entry id.
func (d *Delete) Submit(ctx context.Context, password string) (string, error) {
	if !d.submitting.CompareAndSwap(false, true) {
		return "", ErrSubmissionInProgress
	}
	defer d.submitting.Store(false)

	msg, err := d.client.Delete(ctx, d.entry.ID, password)
	if err != nil {
		d.log.Warn(ctx, "delete failed", "entry_id", d.entry.ID, "error", err)
		return "", err
	}

	d.log.Info(ctx, "entry deleted", "entry_id", d.entry.ID)
	if d.onSuccess != nil {
		d.onSuccess(ctx)
	}
	return msg, nil
}
