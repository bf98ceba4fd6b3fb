package services

import (
	"errors"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/common"
)

// Action identifies a workflow for user-facing messages.
type Action string

const (
	ActionList     Action = "list"
	ActionRegister Action = "register"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionVerify   Action = "verify"
)

type fallback struct {
	remote    string
	transport string
}

var fallbacks = map[Action]fallback{
	ActionList:     {"Failed to load the app list.", "Server connection error."},
	ActionRegister: {"Registration failed.", "Could not reach the server. The registration was not confirmed."},
	ActionUpdate:   {"Update failed.", "An error occurred while sending the changes to the server."},
	ActionDelete:   {"Delete failed. Please check the password.", "Could not delete the entry. Check the server connection."},
	ActionVerify:   {"Incorrect password.", "Incorrect password."},
}

// Success messages shown when the endpoint sends none.
var successes = map[Action]string{
	ActionRegister: "Registered successfully!",
	ActionUpdate:   "Saved successfully!",
	ActionDelete:   "Deleted.",
}

// UserMessage maps a workflow error onto the text shown to the user:
// validation errors describe the missing input, endpoint rejections show the
// endpoint's message verbatim when it sent one, and everything else collapses
// to a generic connectivity message.
func UserMessage(a Action, err error) string {
	var (
		re *client.RemoteError
		fe *models.FieldError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSubmissionInProgress):
		return "A submission is already in progress. Please wait."
	case errors.As(err, &fe):
		return "Please fill in the " + fe.Field + " field."
	case errors.Is(err, ErrNoImages):
		return "Please upload at least one image."
	case errors.Is(err, ErrNoPassword):
		return "Please enter a password."
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	case errors.Is(err, ErrLocked):
		return "Verify the owner password first."
	case errors.As(err, &re):
		if re.Message != "" {
			return re.Message
		}
		return fallbacks[a].remote
	default:
		return fallbacks[a].transport
	}
}

// SuccessMessage returns the endpoint's message or the per-action default.
func SuccessMessage(a Action, msg string) string {
	if msg != "" {
		return msg
	}
	return successes[a]
}
