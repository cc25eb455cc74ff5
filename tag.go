package sfnt

import "strings"

// Tag is a 4-byte SFNT table identifier, such as "glyf" or "CFF ".
type Tag [4]byte

// MakeTag builds a Tag from a string. Strings shorter than 4 bytes are
// padded with spaces, matching the convention used by the tables
// themselves (e.g. "CFF ").
func MakeTag(s string) Tag {
	var t Tag
	copy(t[:], s+"    ")
	return t
}

func (t Tag) String() string {
	return strings.TrimRight(string(t[:]), "\x00")
}

// Less reports whether t sorts before other in the total order used by the
// table directory (lexicographic byte comparison).
func (t Tag) Less(other Tag) bool {
	for i := range t {
		if t[i] != other[i] {
			return t[i] < other[i]
		}
	}
	return false
}

var (
	tagCFF  = MakeTag("CFF ")
	tagCFF2 = MakeTag("CFF2")
	tagSVG  = MakeTag("SVG ")
	tagGlyf = MakeTag("glyf")
	tagLoca = MakeTag("loca")
	tagHead = MakeTag("head")
	tagMaxp = MakeTag("maxp")
)
