// Package store persists per-channel analysis results and decides which
// comments still need analysis.
//
// Each channel has one JSON file under the data directory, keyed by video id
// and then comment id. A comment that appears in the store has been analyzed
// exactly once and is never re-analyzed or mutated; the file only ever grows.
//
// Writes happen through a Session: results accumulate in memory while a batch
// runs and reach disk only on an explicit Commit. A crash or a Discard leaves
// the persisted file exactly as it was when the session started. Saves are
// atomic (temp file + rename), so a crash mid-write cannot corrupt the
// previous valid file.
package store
