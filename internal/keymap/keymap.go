// Package keymap defines key bindings for the application.
package keymap

import "strings"

// Binding describes a single key binding for documentation.
type Binding struct {
	Keys        []string
	Description string
	Context     string // "global", "capture", "recording", "results", "input"
}

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, "quit", "global"},

	// Capture screen, idle
	{[]string{"r"}, "record", "capture"},
	{[]string{"o"}, "open file", "capture"},
	{[]string{"p"}, "preview", "capture"},
	{[]string{"enter"}, "classify", "capture"},

	// Capture screen, while recording
	{[]string{"r"}, "stop", "recording"},

	// Results screen
	{[]string{"j", "k"}, "move", "results"},
	{[]string{"x"}, "remove", "results"},
	{[]string{"a"}, "add more", "results"},
	{[]string{"g"}, "regenerate", "results"},
	{[]string{"esc"}, "back", "results"},

	// File path input
	{[]string{"enter"}, "load", "input"},
	{[]string{"esc"}, "cancel", "input"},
}

// ForContext returns the bindings for a context, in declaration order.
func ForContext(context string) []Binding {
	var out []Binding
	for _, b := range All {
		if b.Context == context {
			out = append(out, b)
		}
	}
	return out
}

// Line renders a one-line help string for a context, with the global
// bindings appended.
func Line(context string) string {
	var parts []string
	for _, b := range append(ForContext(context), ForContext("global")...) {
		parts = append(parts, strings.Join(b.Keys, "/")+" "+b.Description)
	}
	return strings.Join(parts, " · ")
}
