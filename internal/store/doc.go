// Package store is the local record store: a small persistent key/value
// store holding the user table, the session pointer and the quiz-attempt log.
//
// # Backends
//
//   - SQLiteStore keeps records in a single `records` table of an SQLite file
//     (pure Go driver modernc.org/sqlite). The schema is applied with goose
//     from the embedded migrations directory.
//   - MemoryStore keeps records in a map; used with the -memory flag and in tests.
//
// # Contract
//
// Get returns (nil, nil) for an absent key. Update performs an atomic
// read-modify-write of a single key: it is the only way services mutate
// collections, so two mutations never interleave inside one process.
// Across processes the SQLite backend serialises writers; the last writer
// wins.
//
// GetJSON, SetJSON and UpdateJSON layer typed JSON values on top of any Store.
package store
