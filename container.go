package sfnt

import (
	"golang.org/x/exp/slices"

	"github.com/gopherfonts/sfntoutline/internal/bin"
)

// TableRecord is one entry of an SFNT table directory.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

const maxSaneTableCount = 4096

// offsetTable is the 12-byte SFNT header plus the directory that follows it,
// before any particular font within a collection has been selected.
type offsetTable struct {
	scalerType uint32
	records    []TableRecord // sorted by Tag
	base       int           // byte offset of this offset table within the file
}

// FontFile is the result of demultiplexing a raw buffer into either a
// single SFNT font or a TrueType collection ("ttcf") of several.
type FontFile struct {
	data       []byte
	collection bool

	// Single-font fields.
	single offsetTable

	// Collection fields.
	majorVersion, minorVersion uint16
	fonts                      []offsetTable
	dsigLength, dsigOffset     uint32
}

// IsCollection reports whether the file is a "ttcf" font collection.
func (ff *FontFile) IsCollection() bool { return ff.collection }

// NumFonts returns the number of fonts the file contains (1 for a
// single-font file).
func (ff *FontFile) NumFonts() int {
	if ff.collection {
		return len(ff.fonts)
	}
	return 1
}

var ttcfTag = [4]byte{'t', 't', 'c', 'f'}

// Parse inspects the container structure of data without selecting a
// particular font, surfacing the structure for introspection.
func Parse(data []byte) (*FontFile, error) {
	if len(data) < 4 {
		return nil, errUnexpectedEOF()
	}
	var magic [4]byte
	copy(magic[:], data[:4])

	if magic != ttcfTag {
		tbl, err := readOffsetTable(data, 0)
		if err != nil {
			return nil, err
		}
		return &FontFile{data: data, single: tbl}, nil
	}

	cur := bin.NewCursor(data)
	if _, err := cur.Bytes(4); err != nil { // "ttcf"
		return nil, errUnexpectedEOF()
	}
	major, err := cur.U16()
	if err != nil {
		return nil, errUnexpectedEOF()
	}
	minor, err := cur.U16()
	if err != nil {
		return nil, errUnexpectedEOF()
	}
	numFonts, err := cur.U32()
	if err != nil {
		return nil, errUnexpectedEOF()
	}
	if numFonts > 10000 {
		return nil, errTableParse(Tag(ttcfTag), errOther("collection declares too many fonts"))
	}

	ff := &FontFile{
		data:         data,
		collection:   true,
		majorVersion: major,
		minorVersion: minor,
	}

	offsets := make([]uint32, numFonts)
	for i := range offsets {
		off, err := cur.U32()
		if err != nil {
			return nil, errUnexpectedEOF()
		}
		offsets[i] = off
	}

	if major >= 2 {
		// DSIG signature triple: tag, length, offset.
		if _, err := cur.U32(); err != nil { // dsig tag, unused
			return nil, errUnexpectedEOF()
		}
		dsigLength, err := cur.U32()
		if err != nil {
			return nil, errUnexpectedEOF()
		}
		dsigOffset, err := cur.U32()
		if err != nil {
			return nil, errUnexpectedEOF()
		}
		ff.dsigLength = dsigLength
		ff.dsigOffset = dsigOffset
	}

	ff.fonts = make([]offsetTable, numFonts)
	for i, off := range offsets {
		tbl, err := readOffsetTable(data, int(off))
		if err != nil {
			return nil, err
		}
		ff.fonts[i] = tbl
	}

	return ff, nil
}

func readOffsetTable(data []byte, base int) (offsetTable, error) {
	scalerType, err := bin.U32(data, base)
	if err != nil {
		return offsetTable{}, errUnexpectedEOF()
	}
	numTables, err := bin.U16(data, base+4)
	if err != nil {
		return offsetTable{}, errUnexpectedEOF()
	}
	if int(numTables) > maxSaneTableCount {
		return offsetTable{}, errOther("sfnt: implausible table count")
	}

	records := make([]TableRecord, numTables)
	recBase := base + 12
	for i := range records {
		off := recBase + i*16
		var tag [4]byte
		tb, err := bin.View(data, off, 4)
		if err != nil {
			return offsetTable{}, errUnexpectedEOF()
		}
		copy(tag[:], tb)
		checksum, err := bin.U32(data, off+4)
		if err != nil {
			return offsetTable{}, errUnexpectedEOF()
		}
		tableOffset, err := bin.U32(data, off+8)
		if err != nil {
			return offsetTable{}, errUnexpectedEOF()
		}
		length, err := bin.U32(data, off+12)
		if err != nil {
			return offsetTable{}, errUnexpectedEOF()
		}
		if uint64(tableOffset)+uint64(length) > uint64(len(data)) {
			return offsetTable{}, errTableParse(Tag(tag), errOther("table extends past end of file"))
		}
		records[i] = TableRecord{Tag: Tag(tag), Checksum: checksum, Offset: tableOffset, Length: length}
	}

	slices.SortFunc(records, func(a, b TableRecord) int {
		switch {
		case a.Tag.Less(b.Tag):
			return -1
		case b.Tag.Less(a.Tag):
			return 1
		default:
			return 0
		}
	})

	return offsetTable{scalerType: scalerType, records: records, base: base}, nil
}

// Font is one selected, fully addressable font: its table directory plus
// the backing byte buffer every table and glyph borrows from.
type Font struct {
	data       []byte
	records    []TableRecord
	scalerType uint32
}

// FromBytes parses data and selects the index'th font within it (index 0
// for a non-collection file).
func FromBytes(data []byte, index uint32) (*Font, error) {
	ff, err := Parse(data)
	if err != nil {
		return nil, err
	}

	var tbl offsetTable
	if ff.collection {
		if int(index) >= len(ff.fonts) {
			return nil, errFontNotFound(index)
		}
		tbl = ff.fonts[index]
	} else {
		if index != 0 {
			return nil, errFontNotFound(index)
		}
		tbl = ff.single
	}

	return &Font{data: data, records: tbl.records, scalerType: tbl.scalerType}, nil
}

// TableData returns the raw bytes of the named table, if present. The
// returned slice aliases the font's backing buffer.
func (f *Font) TableData(tag Tag) ([]byte, bool) {
	i, ok := slices.BinarySearchFunc(f.records, tag, func(r TableRecord, t Tag) int {
		switch {
		case r.Tag.Less(t):
			return -1
		case t.Less(r.Tag):
			return 1
		default:
			return 0
		}
	})
	if !ok {
		return nil, false
	}
	rec := f.records[i]
	b, err := bin.View(f.data, int(rec.Offset), int(rec.Length))
	if err != nil {
		return nil, false
	}
	return b, true
}

// HasTable reports whether tag is present in the font's table directory.
func (f *Font) HasTable(tag Tag) bool {
	_, ok := f.TableData(tag)
	return ok
}

// requireTable is like TableData but returns a TableMissing ParserError
// instead of a boolean.
func (f *Font) requireTable(tag Tag) ([]byte, error) {
	b, ok := f.TableData(tag)
	if !ok {
		return nil, errTableMissing(tag)
	}
	return b, nil
}

// OutlineType reports which outline format the font carries, per the
// decision order SVG > CFF > CFF2 > TrueType.
func (f *Font) OutlineType() OutlineType {
	switch {
	case f.HasTable(tagSVG):
		return OutlineSVG
	case f.HasTable(tagCFF):
		return OutlineCFF
	case f.HasTable(tagCFF2):
		return OutlineCFF2
	default:
		return OutlineTrueType
	}
}

// OutlineType classifies which glyph-outline representation a font uses.
type OutlineType int

const (
	OutlineTrueType OutlineType = iota
	OutlineCFF
	OutlineCFF2
	OutlineSVG
)

func (t OutlineType) String() string {
	switch t {
	case OutlineTrueType:
		return "TrueType"
	case OutlineCFF:
		return "CFF"
	case OutlineCFF2:
		return "CFF2"
	case OutlineSVG:
		return "SVG"
	default:
		return "unknown"
	}
}
