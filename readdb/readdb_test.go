package readdb

import (
	"strings"
	"testing"
)

const testFasta = `>read0
ACGTACGTAC
GTACGT
>read1
acgtnNNNACGTACGT
`

func TestOpenNoQuality(t *testing.T) {
	db, err := Open(strings.NewReader(testFasta), nil, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if db.NumReads() != 2 {
		t.Fatalf("NumReads() = %d, want 2", db.NumReads())
	}
	if db.NumQualityStreams() != 0 {
		t.Fatalf("NumQualityStreams() = %d, want 0", db.NumQualityStreams())
	}
	if got, want := db.ReadLen(0), 16; got != want {
		t.Errorf("ReadLen(0) = %d, want %d", got, want)
	}

	var buf []byte
	seq, err := db.LoadRead(1, &buf)
	if err != nil {
		t.Fatalf("LoadRead: %v", err)
	}
	if string(seq) != "ACGTNNNNACGTACGT" {
		t.Errorf("LoadRead(1) = %q, want uppercased %q", seq, "ACGTNNNNACGTACGT")
	}

	if err := db.LoadQuality(0, nil); err == nil {
		t.Error("expected LoadQuality to fail when no quality streams were loaded")
	}
}

func TestOpenWithQuality(t *testing.T) {
	qv := "QQQQQQQQQQQQQQQQ\nRRRRRRRRRRRRRRRR\nAAAAAAAAAAAAAAAA\nBBBBBBBBBBBBBBBB\n"
	db, err := Open(strings.NewReader(testFasta), strings.NewReader(qv), 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if db.NumQualityStreams() != 2 {
		t.Fatalf("NumQualityStreams() = %d, want 2", db.NumQualityStreams())
	}

	out := make([][]byte, 2)
	if err := db.LoadQuality(1, out); err != nil {
		t.Fatalf("LoadQuality: %v", err)
	}
	if string(out[0]) != "AAAAAAAAAAAAAAAA" || string(out[1]) != "BBBBBBBBBBBBBBBB" {
		t.Errorf("LoadQuality(1) = %q, %q", out[0], out[1])
	}
}

func TestOpenInvalidBase(t *testing.T) {
	_, err := Open(strings.NewReader(">r\nACGTX\n"), nil, 0)
	if err == nil {
		t.Fatal("expected an error for an invalid base")
	}
}
