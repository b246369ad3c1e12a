// Package main hosts the uploadnotify CLI entrypoint and command graph.
//
// The Cobra-based command tree loads the TOML configuration once, wires the
// notification lifecycle handler to an in-process tray, the foreground
// holder, and the optional ntfy mirror, and exposes commands to preview the
// notification of each task status, replay scripted uploads, list registered
// channels, and scaffold or validate configuration.
package main
