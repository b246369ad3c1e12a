// Package notifications renders upload task lifecycle events as user-visible
// notifications.
//
// Handler is the lifecycle observer: it maps start, progress, success and
// failure callbacks to notification content and owns the two-slot identity
// scheme in which the ongoing notification lives at the task's base identity
// and the terminal one at TerminalID(base). Everything outside that policy is
// reached through small interfaces (Delivery, ChannelRegistry,
// ForegroundHolder, Substituter, SoundResolver) so the host decides how
// notifications are actually shown.
//
// A nil *Config is the supported "notifications disabled for this task" mode
// and turns every callback into a no-op. The only error the handler ever
// returns is a missing notification channel at initialization time.
//
// NtfyDelivery mirrors terminal notifications to an ntfy topic and Fanout
// combines several deliveries behind one interface.
package notifications
