// Package app is the composition root for shelf.
//
// Run loads configuration and preferences, sets up logging and metrics,
// builds the API client and the configured mirror backend, loads the catalog
// into a state.Store and then either exports the first page (headless mode)
// or hands the store to the terminal UI.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()          TOML + SHELF_* env
//	       ├─────> logging.Setup()        zerolog to the log file
//	       ├─────> prefs.Load()           theme, page size
//	       ├─────> StartMetricsServer()   optional /metrics
//	       ├─────> platzi.NewClient()     REST client
//	       ├─────> openMirror()           file or redis
//	       ├─────> store.Initialize()     or Reset() with --reset
//	       └─────> ui.Run()               or export.WriteFile() with --export
//
// A failed initial load is fatal only in headless mode; the UI shows the
// error and lets the user retry with a reset.
package app
