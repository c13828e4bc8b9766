// Package models defines the records held by the task store and their
// persisted JSON encoding.
package models
