package notifications

import (
	"errors"
	"fmt"
)

// ErrChannelNotFound is returned by OnInitialize when the configured channel
// has not been registered. It is a host bootstrap defect, not a runtime
// condition.
var ErrChannelNotFound = errors.New("notification channel does not exist")

// ChannelNotFoundError names the missing channel.
type ChannelNotFoundError struct {
	ChannelID string
}

func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("the provided notification channel ID %q does not exist: create it at startup before running uploads", e.ChannelID)
}

func (e *ChannelNotFoundError) Unwrap() error {
	return ErrChannelNotFound
}
