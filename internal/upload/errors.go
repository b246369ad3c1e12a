package upload

import (
	"errors"
	"fmt"
)

// ErrUserCancelled marks a task that stopped because the user asked it to.
var ErrUserCancelled = errors.New("upload cancelled by user")

// UserCancelledError reports a cancellation for a specific task.
type UserCancelledError struct {
	TaskID string
}

func (e *UserCancelledError) Error() string {
	if e == nil || e.TaskID == "" {
		return ErrUserCancelled.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUserCancelled.Error(), e.TaskID)
}

// Is lets errors.Is match the sentinel.
func (e *UserCancelledError) Is(target error) bool {
	return target == ErrUserCancelled
}

// IsUserCancelled reports whether err, or anything it wraps, is a user
// cancellation.
func IsUserCancelled(err error) bool {
	return errors.Is(err, ErrUserCancelled)
}
