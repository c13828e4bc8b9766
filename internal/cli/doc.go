// Package cli is the interactive front end of tasktracker: a line-based
// REPL that drives the task store.
package cli
