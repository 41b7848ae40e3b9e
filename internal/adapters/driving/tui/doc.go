// Package tui implements the interactive terminal session for asking
// questions against the indexed library, built on Bubble Tea.
package tui
