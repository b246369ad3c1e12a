// Package channels keeps the notification channels registered with the host
// at startup.
//
// Tasks name a channel through notifications.channel_id; the lifecycle
// handler asks the Registry whether it exists before showing anything and
// fails the task when it does not.
package channels
