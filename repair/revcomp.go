package repair

// complementTable maps each ASCII base to its complement; anything not one
// of ACGTacgt maps to 'N', matching the original tool's handling of
// ambiguity codes and gap characters.
var complementTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 'N'
	}
	t['A'], t['a'] = 'T', 'T'
	t['C'], t['c'] = 'G', 'G'
	t['G'], t['g'] = 'C', 'C'
	t['T'], t['t'] = 'A', 'A'
	return t
}()

// reverseComplement writes the reverse complement of src into dst, which
// must have the same length as src. dst and src may be the same slice: the
// two-pointer swap never reads a position after it has been overwritten.
func reverseComplement(dst, src []byte) {
	n := len(src)
	i, j := 0, n-1
	for i < j {
		si, sj := src[i], src[j]
		dst[i] = complementTable[sj]
		dst[j] = complementTable[si]
		i++
		j--
	}
	if i == j {
		dst[i] = complementTable[src[i]]
	}
}

// reverseBytes reverses b in place. Quality streams are flipped without
// complementing the alphabet: a quality value is a property of a base call,
// not a base, so there is nothing to complement.
func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
