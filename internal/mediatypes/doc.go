// Package mediatypes provides shared type definitions and utilities for media
// file classification across the indexing pipeline.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles. It contains primitive types,
// constants, and pure utility functions with no external dependencies beyond
// the standard library.
//
// # Entry Kinds
//
// The package defines an EntryKind enum for classifying filesystem entries
// during an indexing scan:
//
//	mediatypes.KindFolder // Directories
//	mediatypes.KindVideo  // Supported video formats (mp4, mkv, avi, etc.)
//	mediatypes.KindAudio  // Supported audio formats (mp3, flac, m4a, etc.)
//	mediatypes.KindOther  // Everything else; skipped by the indexer
//
// # Extension Detection
//
// Use GetEntryKind to classify a file by its extension:
//
//	ext := strings.ToLower(filepath.Ext(filename))
//	kind := mediatypes.GetEntryKind(ext)
//
//	switch kind {
//	case mediatypes.KindVideo:
//	    // Index as video
//	case mediatypes.KindAudio:
//	    // Index as audio
//	}
//
// # Media Kinds
//
// MediaKind (movie or series) classifies a resolved title rather than a file,
// and is produced by the filename parser and the metadata resolver.
package mediatypes
