// Package indexer builds the browsable file index.
//
// A scan enumerates a directory tree with an explicit stack (no
// recursion), classifying entries as folders or, by extension allow-list,
// video/audio files. Non-matching files are skipped entirely. Each scan is
// recorded as a scan log row moving from running to completed or failed,
// and the indexed subtree is fully replaced in a single transaction so the
// index never holds a half-written scan.
//
// At most one scan runs at a time; a second start request is rejected with
// the running scan's id. Per-entry I/O errors are counted and collected
// into the scan's error detail (first 100) without aborting the walk.
// Hidden files and directories (prefixed with '.') are excluded.
package indexer
