// Package handlers provides HTTP request handlers for the media indexer API.
//
// It includes handlers for:
//   - Index scans and scan status
//   - Metadata resolution and scan progress
//   - Cached metadata lookup by path
//   - Health checks and application stats
package handlers
