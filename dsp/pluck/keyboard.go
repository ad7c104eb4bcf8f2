package pluck

import "unicode"

// KeyLayout lists the keyboard characters for voices 0..36 in order. The
// two rows of a QWERTY keyboard form a piano-like chromatic layout.
const KeyLayout = "q2we4r5ty7u8i9op-[=zxdcfvgbnjmk,.;/' "

// keyTable maps case-folded keys to voice indices.
type keyTable map[rune]int

func newKeyTable(layout string) keyTable {
	table := make(keyTable, len(layout))
	i := 0
	for _, r := range layout {
		table[foldKey(r)] = i
		i++
	}
	return table
}

func (k keyTable) lookup(r rune) (int, bool) {
	i, ok := k[foldKey(r)]
	return i, ok
}

func foldKey(r rune) rune {
	return unicode.ToLower(r)
}
