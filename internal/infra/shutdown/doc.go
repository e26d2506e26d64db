// Package shutdown runs cleanup hooks when a run ends.
//
// Hooks registered with OnShutdown run in reverse order of registration
// under a shared timeout, either when the caller invokes Shutdown after
// the workers have joined or when Linger is interrupted by SIGINT or
// SIGTERM.
package shutdown
