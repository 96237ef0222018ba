// Package store defines the key-value persistence boundary used by the
// generation history. The interface abstracts the underlying storage
// mechanism from the application's core logic, so the history log behaves
// the same over a local file, SQLite, PostgreSQL, or Redis.
//
// Implementations live under internal/platform (filekv, sqlkv, rediskv);
// this package carries the in-memory implementation used in tests and by
// the "memory" backend.
package store
