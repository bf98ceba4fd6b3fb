package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/images"
	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/common"
	"github.com/dmitrijs2005/appgallery/internal/logging"
)

// Registration creates one entry together with its images.
//
// The endpoint has no idempotency key, so Submit guarantees at most one
// in-flight request per workflow value and exactly one request on the
// success path: field and image validation happen before the guard is
// released to the network, and a concurrent Submit fails fast with
// ErrSubmissionInProgress.
type Registration struct {
	client    client.Client
	source    images.Source
	log       logging.Logger
	onSuccess func(context.Context)

	submitting atomic.Bool
}

// RegistrationInput is the collected form. Images holds source references,
// of which only the first common.MaxImages are used.
type RegistrationInput struct {
	Fields   models.Fields
	Password string
	Images   []string
}

func newRegistration(c client.Client, src images.Source, log logging.Logger, onSuccess func(context.Context)) *Registration {
	if src == nil {
		src = images.Router{}
	}
	return &Registration{client: c, source: src, log: log, onSuccess: onSuccess}
}

// Submitting reports whether a submission is in flight, for disabling the
// trigger control.
func (r *Registration) Submitting() bool {
	return r.submitting.Load()
}

// Submit loads the referenced images and registers the entry.
func (r *Registration) Submit(ctx context.Context, in RegistrationInput) (string, error) {
	if !r.submitting.CompareAndSwap(false, true) {
		return "", ErrSubmissionInProgress
	}
	defer r.submitting.Store(false)

	refs := images.Select(in.Images)
	if err := validateRegistration(in.Fields, in.Password, len(refs)); err != nil {
		return "", err
	}

	imgs, err := images.Load(ctx, r.source, refs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return r.send(ctx, in.Fields, in.Password, imgs)
}

// SubmitImages registers the entry with images that are already in memory,
// such as multipart uploads.
func (r *Registration) SubmitImages(ctx context.Context, fields models.Fields, password string, imgs []images.Image) (string, error) {
	if !r.submitting.CompareAndSwap(false, true) {
		return "", ErrSubmissionInProgress
	}
	defer r.submitting.Store(false)

	imgs = images.Select(imgs)
	if err := validateRegistration(fields, password, len(imgs)); err != nil {
		return "", err
	}
	return r.send(ctx, fields, password, imgs)
}

func (r *Registration) send(ctx context.Context, fields models.Fields, password string, imgs []images.Image) (string, error) {
	payloads := images.Encode(imgs)

	r.log.Info(ctx, "submitting registration", "name", fields.Name, "images", len(payloads))
	msg, err := r.client.Register(ctx, fields, password, payloads)
	if err != nil {
		r.log.Warn(ctx, "registration failed", "name", fields.Name, "error", err)
		return "", err
	}

	if r.onSuccess != nil {
		r.onSuccess(ctx)
	}
	return msg, nil
}

func validateRegistration(fields models.Fields, password string, nimages int) error {
	if err := fields.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if password == "" {
		return ErrNoPassword
	}
	if nimages == 0 {
		return ErrNoImages
	}
	return nil
}
