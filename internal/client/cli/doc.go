// Package cli provides the interactive GophDrive terminal shell.
//
// It wires configuration, the local session store, API services, and a REPL
// whose commands depend on the active view. Typical flow: restore the cached
// session (or prompt for a token), start a background connectivity watcher,
// and execute user commands.
//
// Views:
//   - dashboard: recent files and storage statistics
//   - search: filters and pages over the whole catalog
//   - details: the most recent files with an AI summary and preview link
//   - upload: send local files with a progress bar
//   - upgrade: plans and the checkout flow
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
