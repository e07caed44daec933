package seq

// complement maps each base, including IUPAC ambiguity codes, to its pair.
var complement = [256]byte{
	'A': 'T', 'T': 'A', 'U': 'A',
	'G': 'C', 'C': 'G',
	'R': 'Y', 'Y': 'R',
	'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B',
	'D': 'H', 'H': 'D',
	'S': 'S', 'W': 'W', 'N': 'N',
	'a': 't', 't': 'a', 'u': 'a',
	'g': 'c', 'c': 'g',
	'r': 'y', 'y': 'r',
	'k': 'm', 'm': 'k',
	'b': 'v', 'v': 'b',
	'd': 'h', 'h': 'd',
	's': 's', 'w': 'w', 'n': 'n',
}

// RevComp returns the reverse complement of a sequence. Unknown characters
// become N.
func RevComp(s string) string {
	rc := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := complement[s[i]]
		if c == 0 {
			c = 'N'
		}
		rc[len(s)-1-i] = c
	}
	return string(rc)
}

// Window reads bases [start, end) of s. On circular sequences the window may
// run past the end and wraps to the start.
func Window(s string, circular bool, start, end int) string {
	if !circular || end <= len(s) {
		return s[start:end]
	}
	n := len(s)
	out := make([]byte, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, s[i%n])
	}
	return string(out)
}
