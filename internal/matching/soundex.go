package matching

import (
	"strings"
	"unicode"
)

// soundexCodes groups consonants that sound alike. Letters not listed,
// vowels among them, have no code.
var soundexCodes = map[rune]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1', 'W': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// Soundex returns a six character phonetic code for a player name, so that
// spellings such as Fischer and Fisher compare equal.
func Soundex(name string) string {
	letters := make([]rune, 0, len(name))
	for _, r := range strings.ToUpper(name) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteRune(letters[0])
	last := soundexCodes[letters[0]]
	for _, r := range letters[1:] {
		if sb.Len() >= 6 {
			break
		}
		code, ok := soundexCodes[r]
		if !ok {
			continue
		}
		if code != last {
			sb.WriteByte(code)
		}
		last = code
	}
	for sb.Len() < 6 {
		sb.WriteByte('0')
	}
	return sb.String()
}
