// Package view turns a product collection and the current filter, sort and
// page settings into the rows a presentation layer renders.
//
// Every function here is pure: inputs are never modified and results are
// freshly allocated, so callers can hand them to another goroutine.
package view
