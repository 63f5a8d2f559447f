package readdb

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const bufferInitSize = 1024 * 1024 * 64

// seqStore is an in-memory, order-indexed set of read sequences parsed from
// a FASTA file. Read id == position of the sequence in the file (0-based),
// matching the convention of a DAZZLER-style read database, rather than
// encoding/fasta's by-name lookup.
type seqStore struct {
	names []string
	seqs  [][]byte
}

// newSeqStore parses FASTA-formatted data from r into a seqStore, upper-
// casing bases and validating the {A,C,G,T,N} alphabet as it goes (the
// data model requires load_read to always hand back uppercase sequence).
func newSeqStore(r io.Reader) (*seqStore, error) {
	s := &seqStore{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)

	var cur strings.Builder
	flush := func() error {
		if cur.Len() == 0 && len(s.names) == 0 {
			return nil
		}
		seq := []byte(cur.String())
		if err := upperValidate(seq); err != nil {
			return errors.Wrapf(err, "read %d (%s)", len(s.seqs), s.names[len(s.seqs)])
		}
		s.seqs = append(s.seqs, seq)
		cur.Reset()
		return nil
	}

	started := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line[0] == '>' {
			if started {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			s.names = append(s.names, strings.Fields(line[1:])[0])
			started = true
		} else {
			if !started {
				return nil, errors.New("fasta: sequence data before first header")
			}
			cur.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading fasta")
	}
	if started {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func upperValidate(seq []byte) error {
	for i, b := range seq {
		switch b {
		case 'a':
			seq[i] = 'A'
		case 'c':
			seq[i] = 'C'
		case 'g':
			seq[i] = 'G'
		case 't':
			seq[i] = 'T'
		case 'n':
			seq[i] = 'N'
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return errors.Errorf("invalid base %q", b)
		}
	}
	return nil
}

func (s *seqStore) numReads() int { return len(s.seqs) }

func (s *seqStore) readLen(id int) int { return len(s.seqs[id]) }

func (s *seqStore) loadRead(id int, out *[]byte) []byte {
	seq := s.seqs[id]
	n := len(*out)
	if cap(*out)-n < len(seq) {
		grown := make([]byte, n, n+len(seq))
		copy(grown, *out)
		*out = grown
	}
	*out = (*out)[:n+len(seq)]
	copy((*out)[n:], seq)
	return (*out)[n:]
}
