// Package media downloads and caches poster artwork for indexed media
// files. Posters are stored on disk under a filesystem-safe name derived
// from the cache key and served from a site-relative path.
package media
