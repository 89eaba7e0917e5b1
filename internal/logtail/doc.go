// Package logtail reads the tail of shelf's own log file for display in the
// UI.
//
// Read keeps only the last N lines in a ring buffer, so large log files are
// never held in memory. Parse turns a zerolog JSON line back into an Entry
// with its time, level, message and remaining fields; Entry.String renders it
// in the compact console form used by the log overlay.
package logtail
