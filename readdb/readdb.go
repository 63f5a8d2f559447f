// Package readdb defines the narrow read-only database interface that
// package repair consumes (spec: "db" in the external interfaces), along
// with a concrete, runnable FASTA-backed implementation. The on-disk,
// random-access read database itself (DAZZLER/MARVEL-style) is out of
// scope; this package only needs to satisfy the Database interface below.
package readdb

// Database is the read-only collaborator package repair uses to fetch read
// sequences and per-base quality streams. Implementations must be safe for
// concurrent LoadRead/LoadQuality calls from multiple goroutines, since the
// orchestrator may process A-reads in parallel (see the concurrency model).
type Database interface {
	// NumReads returns the number of reads in the database.
	NumReads() int

	// ReadLen returns the length of read id.
	ReadLen(id int) int

	// NumQualityStreams returns K, the fixed number of parallel per-base
	// quality streams every read carries. It is 0 when the database was
	// opened without quality data.
	NumQualityStreams() int

	// LoadRead appends the uppercase forward-strand bases of read id to
	// *out, growing *out as needed, and returns the slice written
	// (out[len(out)-ReadLen(id):]).
	LoadRead(id int, out *[]byte) ([]byte, error)

	// LoadQuality loads the NumQualityStreams() per-base quality streams of
	// read id into out, which must have length NumQualityStreams(); each
	// out[i] is grown/resized to ReadLen(id).
	LoadQuality(id int, out [][]byte) error
}
