// Package ui prints user facing messages.
//
// Results go to stdout and diagnostics to stderr. Output is styled with
// lipgloss only when stdout is a terminal, so redirected output stays plain.
package ui
