package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/appgallery/internal/client/gate"
	"github.com/dmitrijs2005/appgallery/internal/common"
)

// getSimpleText, getDefaultText, getList and getPassword are indirections
// used to facilitate testing. They point to interactive input helpers and can
// be swapped in tests.
var (
	getSimpleText  = GetSimpleText
	getDefaultText = GetDefaultText
	getList        = GetList
	getPassword    = GetPassword
)

var errCancelled = errors.New("cancelled")

// passwordAsker returns the attempt callback for gate.Prompt. The dialog
// stays open after a rejection; an empty answer closes it.
func (a *App) passwordAsker(prompt string) func(prev error) (string, error) {
	return func(prev error) (string, error) {
		if errors.Is(prev, gate.ErrRejected) {
			a.println("Incorrect password. Try again, or press Enter to cancel.")
		}
		pw, err := getPassword(a.out, prompt)
		if err != nil {
			return "", err
		}
		defer common.WipeByteArray(pw)
		if len(pw) == 0 {
			return "", errCancelled
		}
		return string(pw), nil
	}
}

// finish reports the outcome of a gated command. Cancelling is not an error.
func (a *App) finish(err error) error {
	if errors.Is(err, errCancelled) {
		a.println("Cancelled.")
		return nil
	}
	return err
}

type failureChoice int

const (
	choiceCancel failureChoice = iota
	choiceRetry
	choiceEdit
)

// afterFailure asks how to continue after a failed submit. The entered form
// is kept for retry and edit; a read error counts as cancel.
func (a *App) afterFailure() failureChoice {
	ans, err := getSimpleText(a.reader, "(r)etry, (e)dit the form or (c)ancel [r]", a.out)
	if err != nil {
		return choiceCancel
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "", "r", "retry":
		return choiceRetry
	case "e", "edit":
		return choiceEdit
	default:
		return choiceCancel
	}
}
