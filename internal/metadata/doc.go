// Package metadata resolves human-readable metadata for indexed media
// files and caches the results.
//
// The [Resolver] runs the full resolution chain for one file: filename
// heuristics seed a draft record, the OMDb lookup fills in structured
// detail, the TVMaze lookup adds show and episode detail for series, and
// the Wikidata query is the last resort when nothing else matched. The
// merged record is persisted keyed by absolute file path and served from
// cache while fresh.
//
// The [Scanner] walks a directory tree and resolves every media file whose
// cached record is missing or stale, one file at a time, publishing
// progress that can be polled while the scan runs.
package metadata
