// Package config loads, normalizes, and validates uploadnotify configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type gathers the notification
// presentation for every task status, the registered notification channels,
// and the platform capabilities the lifecycle handler depends on, so they are
// resolved once at startup instead of being probed on every event.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors that name
// the offending TOML key.
package config
