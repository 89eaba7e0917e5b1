// Package ui provides the terminal interface for browsing and editing the
// product catalog.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds a pointer to the shared
// state.Store and copies the visible page, sort indicators and pagination
// window out of it after every action (see Model.refresh). The store owns all
// catalog state; the model only owns input modes, dialogs and banners.
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages, commands and Run
//   - table.go: product table columns, rows, pager and page-size cycle
//   - form.go: edit and create dialogs and their parsing
//   - render.go: View rendering for the browser, dialogs and overlays
//   - keys.go: key bindings and help.KeyMap
//   - theme.go: color themes and Lipgloss styles
//
// # Mutations
//
// Updates, creates, resets and exports run as tea.Cmd so the UI keeps drawing
// while the API call is in flight. The resulting outcome is shown in a banner
// for the settle delay, after which the dialog closes. Validation failures
// keep the create dialog open.
//
// # Key Bindings
//
//   - /: Search titles (esc clears, enter keeps)
//   - t, p: Sort by title or price, pressing again flips the direction
//   - s: Cycle page size (5, 10, 20, 50)
//   - ←/→ or [/]: Previous/next page; < and > jump to the ends
//   - enter or e: Edit the selected product
//   - n: New product
//   - x: Export the current page to CSV
//   - R: Reset local data from the API (asks first)
//   - L: Show the tail of the log file
//   - T: Cycle theme
//   - ?: Toggle help
//   - q or ctrl+c: Quit
package ui
