package store

import "strings"

// encodeSelection packs a selection as a string of '0'/'1' characters.
func encodeSelection(sel []bool) string {
	var b strings.Builder
	b.Grow(len(sel))
	for _, in := range sel {
		if in {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func decodeSelection(s string) []bool {
	sel := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		sel[i] = s[i] == '1'
	}
	return sel
}
