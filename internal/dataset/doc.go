// Package dataset models the per-channel comment corpus and its files.
//
// Each channel lives in two places: a raw source JSON file dropped into the
// input directory by an external scraper, and a canonical channel file under
// the data directory that nazar owns. Sources are merged into the canonical
// file without ever discarding videos or comments that are already known.
//
// Videos may legitimately arrive without a comments mapping; a nil Comments
// map is treated as empty everywhere, never as an error.
package dataset
