package readdb

import (
	"io"

	"github.com/pkg/errors"
)

// FastaDB is a Database backed by an in-memory FASTA sequence store and an
// optional parallel quality-stream file.
type FastaDB struct {
	seqs *seqStore
	qv   *qvStore
}

// Open builds a FastaDB from a FASTA reader and, if qvReader is non-nil, a
// parallel quality-stream reader with the given stream count k.
func Open(fasta io.Reader, qvReader io.Reader, k int) (*FastaDB, error) {
	seqs, err := newSeqStore(fasta)
	if err != nil {
		return nil, errors.Wrap(err, "loading read sequences")
	}
	db := &FastaDB{seqs: seqs}
	if qvReader != nil {
		lens := make([]int, seqs.numReads())
		for i := range lens {
			lens[i] = seqs.readLen(i)
		}
		qv, err := newQVStore(qvReader, k, lens)
		if err != nil {
			return nil, errors.Wrap(err, "loading quality streams")
		}
		db.qv = qv
	}
	return db, nil
}

// NumReads implements Database.
func (db *FastaDB) NumReads() int { return db.seqs.numReads() }

// ReadLen implements Database.
func (db *FastaDB) ReadLen(id int) int { return db.seqs.readLen(id) }

// NumQualityStreams implements Database.
func (db *FastaDB) NumQualityStreams() int {
	if db.qv == nil {
		return 0
	}
	return db.qv.k
}

// LoadRead implements Database.
func (db *FastaDB) LoadRead(id int, out *[]byte) ([]byte, error) {
	if id < 0 || id >= db.seqs.numReads() {
		return nil, errors.Errorf("readdb: read id %d out of range [0,%d)", id, db.seqs.numReads())
	}
	return db.seqs.loadRead(id, out), nil
}

// LoadQuality implements Database.
func (db *FastaDB) LoadQuality(id int, out [][]byte) error {
	if db.qv == nil {
		return errors.New("readdb: no quality streams loaded")
	}
	return db.qv.load(id, out)
}
