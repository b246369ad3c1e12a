// Package replay drives the notification lifecycle handler from a scripted
// sequence of task events.
//
// A script is JSON lines, one event per line:
//
//	{"task":"a","event":"start","files":[{"path":"/tmp/a.zip","size":100}]}
//	{"task":"a","event":"progress","uploaded_bytes":42}
//	{"task":"a","event":"success","status_code":201}
//	{"task":"a","event":"completed"}
//
// Each task gets its own pair of notification identities starting at the
// configured base. Events of one task run in script order; distinct tasks run
// concurrently, the way independent uploads share one handler.
package replay
