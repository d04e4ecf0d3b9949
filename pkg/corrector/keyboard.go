package corrector

import "math"

var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

var keyPos = func() map[byte][2]float64 {
	m := make(map[byte][2]float64)
	for r, row := range keyboardRows {
		// each row is staggered half a key to the right of the one above
		offset := float64(r) * 0.5
		for c := 0; c < len(row); c++ {
			m[row[c]] = [2]float64{float64(r), float64(c) + offset}
		}
	}
	return m
}()

// keyDistance is the distance between two keys in key widths. Keys that are
// not on the letter block are treated as far apart.
func keyDistance(a, b byte) float64 {
	pa, oka := keyPos[a|0x20]
	pb, okb := keyPos[b|0x20]
	if !oka || !okb {
		return 2.5
	}
	dr := pa[0] - pb[0]
	dc := pa[1] - pb[1]
	return math.Sqrt(dr*dr + dc*dc)
}

// nearKeys reports whether a and b touch on the keyboard.
func nearKeys(a, b byte) bool {
	return keyDistance(a, b) <= 1.2
}

// singleSubstitution returns the differing bytes when a and b have the same
// length and differ in exactly one position.
func singleSubstitution(a, b string) (byte, byte, bool) {
	if len(a) != len(b) {
		return 0, 0, false
	}
	diff := -1
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			if diff >= 0 {
				return 0, 0, false
			}
			diff = i
		}
	}
	if diff < 0 {
		return 0, 0, false
	}
	return a[diff], b[diff], true
}

// isOneAdjacentSwap reports whether b is a with one pair of neighbouring
// characters swapped.
func isOneAdjacentSwap(a, b string) bool {
	if len(a) != len(b) || len(a) < 2 {
		return false
	}
	diff := -1
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			diff = i
			break
		}
	}
	if diff == -1 || diff+1 >= len(a) {
		return false
	}
	if a[diff] != b[diff+1] || a[diff+1] != b[diff] {
		return false
	}
	return a[diff+2:] == b[diff+2:]
}
