// Package services contains the gallery workflows: loading the entry list,
// registering a new entry, and editing or deleting an existing one behind
// the matching password gate.
//
// Each workflow value owns its submission guard, so two workflows on
// different entries can run concurrently while a second submit of the same
// workflow is refused until the first returns.
package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/appgallery/internal/common"
)

var (
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrNoImages             = fmt.Errorf("%w: at least one image is required", common.ErrValidation)
	ErrNoPassword           = fmt.Errorf("%w: password is required", common.ErrValidation)
	ErrLocked               = fmt.Errorf("%w: edit is locked until the owner password is verified", common.ErrorUnauthorized)
)
