/*
Package session serialises access to playback sessions.

The Manager wraps a ports.SessionStore with per-session locks so concurrent HTTP or MCP
requests against one session never interleave their read-modify-write cycles. With a
ports.DistributedLocker (see the redis adapter) the guarantee holds across replicas.
*/
package session
