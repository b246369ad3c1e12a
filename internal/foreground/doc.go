// Package foreground decides which task's ongoing notification the host
// presents as its foreground indicator.
//
// The first task to ask while no task holds the foreground becomes the
// foreground task; its ongoing notifications are held by the host instead of
// being shown through the delivery channel. The hold lasts until the task is
// released.
package foreground
