package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed server response")
	ErrRemoteFailure     = errors.New("remote action failed")
)

// RemoteError is returned when the endpoint answers with success:false.
type RemoteError struct {
	Action  string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed", e.Action)
	}
	return fmt.Sprintf("%s failed: %s", e.Action, e.Message)
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteFailure
}
