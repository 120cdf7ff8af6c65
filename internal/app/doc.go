// Package app is the composition root of the tubeclone client.
//
// # Overview
//
// Run wires configuration, logging, the backend client, the health monitor
// and the UI together, then blocks until the TUI exits.
//
//  1. Load ~/.config/tubeclone/config.toml and apply command line overrides
//  2. Open the client log file (the TUI owns the terminal)
//  3. Load saved preferences (theme, auto-connect)
//  4. Create backend clients for the API and upload base URLs
//  5. Start the passive health monitor feeding a state.Store
//  6. Run the TUI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()         Read client config
//	       ├─────> logging.New()         JSON log file
//	       ├─────> backend.NewClient()   HTTP client for the API
//	       ├─────> probe.StartMonitor()  Passive health checks
//	       └─────> ui.Run()              Start TUI (blocks)
//
// The monitor only updates the status shown in the header and on the Setup
// screen. Views switch to backend data only when the user asks for it.
//
// # Error Handling
//
// An unreadable or invalid config and an unopenable log file are fatal. The
// API being down is not: the client starts on demo data either way.
package app
