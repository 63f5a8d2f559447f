package readdb

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// qvStore holds K parallel per-base quality streams for every read, parsed
// from a simple text format: for each read, in read-id order, K lines of
// raw quality bytes, each of length equal to that read's sequence length.
type qvStore struct {
	k       int
	streams [][][]byte // streams[id][stream] = bytes
}

func newQVStore(r io.Reader, k int, readLens []int) (*qvStore, error) {
	s := &qvStore{k: k, streams: make([][][]byte, len(readLens))}
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, bufferInitSize)
	for id, rlen := range readLens {
		streams := make([][]byte, k)
		for j := 0; j < k; j++ {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, errors.Wrapf(err, "reading qv stream %d of read %d", j, id)
				}
				return nil, errors.Errorf("qv file truncated at read %d stream %d", id, j)
			}
			line := sc.Bytes()
			if len(line) != rlen {
				return nil, errors.Errorf("qv stream %d of read %d: expected length %d, got %d", j, id, rlen, len(line))
			}
			streams[j] = append([]byte(nil), line...)
		}
		s.streams[id] = streams
	}
	return s, nil
}

func (s *qvStore) load(id int, out [][]byte) error {
	if len(out) != s.k {
		return errors.Errorf("qv: expected %d streams, got %d", s.k, len(out))
	}
	for j := 0; j < s.k; j++ {
		out[j] = append(out[j][:0], s.streams[id][j]...)
	}
	return nil
}
