// Package filename extracts title, year, and episode information from raw
// media filenames using heuristic pattern matching.
//
// Parsing is pure and never fails: in the worst case the cleaned filename
// becomes the title and every other field stays at its zero value. Episodic
// patterns (S01E02, 1x02) are checked before year extraction, so a filename
// carrying both is classified as a series.
package filename
