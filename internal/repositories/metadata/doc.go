// Package metadata is the durable key/value backing store the task store
// persists into.
//
// # Overview
//
// Repository is the consumed contract: Get, Set and Delete by string key,
// each independently fallible. Values are opaque bytes; the persistence
// layer decides their encoding. Absence is reported as ErrKeyNotFound so
// that callers can tell "no value yet" from "could not read".
//
// Drivers
//
//   - MemoryRepository: process-local map, for tests and throwaway runs
//   - SQLiteRepository: metadata table over dbx.DBTX (modernc.org/sqlite)
//   - PostgresRepository: metadata table over dbx.DBTX (pgx stdlib)
//   - RedisRepository: plain string keys under a prefix
//   - S3Repository: one object per key under a prefix
//
// Drivers that can write several keys atomically also implement BatchSetter.
package metadata
