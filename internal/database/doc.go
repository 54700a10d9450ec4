// Package database provides SQLite persistence for the media indexer.
//
// It handles storage and retrieval of:
//   - The browsable file index (videos, audio, folders)
//   - Scan logs, one row per indexing run
//   - The metadata cache, keyed by absolute file path
//
// The database uses WAL mode for improved concurrent read performance
// and includes automatic schema initialization.
package database
