// Package tray is an in-process notification shade.
//
// A Tray implements notifications.Delivery: it keeps the notification
// currently shown at each identity, replacing it wholesale on every Notify,
// and an append-only log of every operation it received. The replay runner
// and the CLI render both.
package tray
