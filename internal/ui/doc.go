// Package ui renders scan results for the terminal: the report panels and the
// live progress view shown while a scan runs.
package ui
