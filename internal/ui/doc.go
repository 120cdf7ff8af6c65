// Package ui provides the terminal front end of the tubeclone client.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all screen state; Update
// dispatches key presses and asynchronous results, and View renders the
// current screen below a header and a command bar.
//
// Every data-bearing view is backed by a reconcile.Reconciler. The view
// starts on bundled demo data and only switches to backend data after the
// user asks for it (b) and the backend proves healthy. Fetches run as
// tea.Cmds that carry the reconciler's generation token, so a late answer
// from an abandoned attempt is dropped by the reconciler instead of
// overwriting newer state.
//
// # Screens
//
//   - Home: the video feed with search
//   - Watch: one video, its comments and an "Up next" list
//   - Upload: the three-field upload form
//   - Setup: passive backend status and instructions for starting the API
//   - Logs: the tail of the client log file
//
// # Key Bindings
//
//   - b: Try the backend for the current view
//   - d: Switch the current view back to demo data
//   - /: Search the feed, x clears it
//   - c: Write a comment on the watch page
//   - u, s, l, H: Upload, Setup, Logs and Home screens
//   - T: Cycle the color theme
//   - ?: Help
//   - q or Ctrl+C: Exit
//
// # External Dependencies
//
//   - reconcile: data-source reconciliation and the local comment thread
//   - state.Store: the latest passive health probe, refreshed by probe.Monitor
//   - logtail: reads the client's JSON log for the Logs screen
//   - prefs: persists the theme and the auto-connect toggle
package ui
