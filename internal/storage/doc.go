// Package storage opens the configured backing store: it creates SQL
// connections, applies the embedded goose migrations and builds the
// matching metadata.Repository driver.
package storage
