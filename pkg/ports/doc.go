/*
Package ports defines the driven ports (interfaces) of pdaboat.

These interfaces decouple playback sessions and delivery adapters from concrete
implementations, so the same game service runs over memory, file or Redis storage and the
same HTTP/MCP adapters run over any simulator.

# Key Interfaces

  - Simulator: Generates traces and lists templates (implemented by pdaboat.Simulator).
  - SessionStore: Persists and loads playback sessions.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
