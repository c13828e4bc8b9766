// Package store holds the authoritative in-memory users, tasks and session
// and keeps them in sync with a metadata.Repository.
//
// Construction starts hydration in the background: the users, tasks and
// session id are loaded concurrently, then the demo baseline is written if
// the backing store had none. Ready is closed only after all of that is
// done. Queries wait for Ready; mutations wait for it too but give up when
// their context ends.
//
// Mutations change memory synchronously and schedule a durable write on a
// per-key persistence.Writer. Callers never wait for the write; Flush does.
package store
