// Package persistence maps the store's collections and session id onto the
// backing key/value store. Adapter does the encoding and I/O; Writer runs
// one goroutine per key that serializes and coalesces flushes.
package persistence
