package bej

import (
	"encoding/binary"

	"github.com/openbmc/libbej/internal/nnint"
)

const dictionaryHeaderSize = 12
const propertyRecordSize = 10

// DictionaryHeader is the fixed 12-byte header of a binary BEJ dictionary.
type DictionaryHeader struct {
	VersionTag    uint8
	Truncated     bool
	EntryCount    uint16
	SchemaVersion uint32
	Size          uint32
}

// PropertyRecord is one fixed 10-byte dictionary property entry.
type PropertyRecord struct {
	Format             FormatTuple
	SequenceNumber     uint16
	ChildPointerOffset uint16
	ChildCount         uint16
	NameLength         uint8
	NameOffset         uint16
}

// Dictionary is a parsed binary BEJ dictionary: a header, a flat array of
// fixed-size property records, and a NUL-terminated name pool. It does not
// own a copy of the underlying bytes; Dictionary methods read out of the
// slice passed to NewDictionary.
type Dictionary struct {
	Header     DictionaryHeader
	raw        []byte
	entriesOff int
	namesOff   int
}

// NewDictionary parses a binary BEJ dictionary from buf. buf is retained,
// not copied.
func NewDictionary(buf []byte) (*Dictionary, error) {
	if len(buf) < dictionaryHeaderSize {
		return nil, newError(ErrInvalidSize, "dictionary shorter than the 12-byte header")
	}
	flags := buf[1]
	hdr := DictionaryHeader{
		VersionTag:    buf[0],
		Truncated:     flags&0x01 != 0,
		EntryCount:    binary.LittleEndian.Uint16(buf[2:4]),
		SchemaVersion: binary.LittleEndian.Uint32(buf[4:8]),
		Size:          binary.LittleEndian.Uint32(buf[8:12]),
	}
	entriesOff := dictionaryHeaderSize
	namesOff := entriesOff + int(hdr.EntryCount)*propertyRecordSize
	if len(buf) < namesOff {
		return nil, newError(ErrInvalidSize, "dictionary truncated before name pool")
	}
	if uint32(len(buf)) < hdr.Size {
		return nil, newError(ErrInvalidSize, "dictionary shorter than declared size")
	}
	return &Dictionary{Header: hdr, raw: buf, entriesOff: entriesOff, namesOff: namesOff}, nil
}

// EntryCount returns the number of property records in the dictionary.
func (d *Dictionary) EntryCount() int {
	return int(d.Header.EntryCount)
}

// PropertyHeadOffset is the entry index of the dictionary's first (root)
// entry, always 0, i.e. where a consumer should begin resolving the
// top-level property set.
func (d *Dictionary) PropertyHeadOffset() uint16 {
	return 0
}

func (d *Dictionary) recordAt(index int) (PropertyRecord, error) {
	if index < 0 || index >= d.EntryCount() {
		return PropertyRecord{}, newError(ErrInvalidPropertyOffset, "dictionary entry index out of range")
	}
	off := d.entriesOff + index*propertyRecordSize
	b := d.raw[off : off+propertyRecordSize]
	return PropertyRecord{
		Format:             FormatTuple(b[0]),
		SequenceNumber:     binary.LittleEndian.Uint16(b[1:3]),
		ChildPointerOffset: binary.LittleEndian.Uint16(b[3:5]),
		ChildCount:         binary.LittleEndian.Uint16(b[5:7]),
		NameLength:         b[7],
		NameOffset:         binary.LittleEndian.Uint16(b[8:10]),
	}, nil
}

// Property scans records starting at entry index startOffset forward
// through the remaining entries (it is not bounded by any single record's
// declared ChildCount) and returns the first one whose sequence number
// equals seq. Callers pass a parent's own ChildPointerOffset as startOffset
// to resolve one of its children.
func (d *Dictionary) Property(startOffset uint16, seq uint16) (PropertyRecord, int, error) {
	if int(startOffset) > d.EntryCount() {
		return PropertyRecord{}, 0, newError(ErrInvalidPropertyOffset, "starting offset is outside the dictionary")
	}
	for i := int(startOffset); i < d.EntryCount(); i++ {
		cand, err := d.recordAt(i)
		if err != nil {
			return PropertyRecord{}, 0, err
		}
		if cand.SequenceNumber == seq {
			return cand, i, nil
		}
	}
	return PropertyRecord{}, 0, newError(ErrUnknownProperty, "no dictionary entry with matching sequence number")
}

// PropertyByName scans records starting at entry index startOffset forward
// through the remaining entries and returns the first one whose name equals
// name. Callers pass a parent's own ChildPointerOffset as startOffset to
// resolve one of its children by name.
func (d *Dictionary) PropertyByName(startOffset uint16, name string) (PropertyRecord, int, error) {
	if int(startOffset) > d.EntryCount() {
		return PropertyRecord{}, 0, newError(ErrInvalidPropertyOffset, "starting offset is outside the dictionary")
	}
	for i := int(startOffset); i < d.EntryCount(); i++ {
		cand, err := d.recordAt(i)
		if err != nil {
			return PropertyRecord{}, 0, err
		}
		n, err := d.PropertyName(cand)
		if err != nil {
			return PropertyRecord{}, 0, err
		}
		if n == name {
			return cand, i, nil
		}
	}
	return PropertyRecord{}, 0, newError(ErrUnknownProperty, "no dictionary entry with matching name")
}

// PropertyName returns rec's name from the dictionary's name pool.
func (d *Dictionary) PropertyName(rec PropertyRecord) (string, error) {
	if rec.NameLength == 0 {
		return "", nil
	}
	start := d.namesOff + int(rec.NameOffset)
	end := start + int(rec.NameLength)
	if end > len(d.raw) || uint32(end) > d.Header.Size {
		return "", newError(ErrInvalidSize, "property name runs past end of dictionary buffer")
	}
	if d.raw[end-1] != 0 {
		return "", newError(ErrInvalidSize, "property name is not NUL-terminated")
	}
	return string(d.raw[start : end-1]), nil
}

// ResolveLocator walks a raw BEJ locator buffer — `nnint(totalBytes) ||
// tupleS1 || tupleS2 || …`, each tupleS an nnint packing a sequence number
// shifted left one bit with the dictionary-selector bit in the LSB — and
// returns the final entry's record and entry index. The first tuple is
// resolved starting at property_head_offset(); every following tuple is
// resolved starting at the previous tuple's matched child_pointer_offset.
func (d *Dictionary) ResolveLocator(locator []byte) (PropertyRecord, int, error) {
	if len(locator) < 1 {
		return PropertyRecord{}, 0, newError(ErrInvalidSize, "locator is empty")
	}
	lengthSize := nnint.Size(locator)
	if lengthSize > len(locator) {
		return PropertyRecord{}, 0, newError(ErrInvalidSize, "locator length-bytes nnint runs past buffer end")
	}
	seqNumbersLen := int(nnint.Value(locator))
	if seqNumbersLen+lengthSize != len(locator) {
		return PropertyRecord{}, 0, newError(ErrInvalidSize, "locator length-bytes field is inconsistent with its actual length")
	}

	off := d.PropertyHeadOffset()
	var rec PropertyRecord
	var idx int
	found := false
	for pos := lengthSize; pos < len(locator); {
		tuple := locator[pos:]
		tupleSize := nnint.Size(tuple)
		if tupleSize > len(tuple) {
			return PropertyRecord{}, 0, newError(ErrInvalidSize, "locator tuple nnint runs past buffer end")
		}
		rawS := nnint.Value(tuple)
		seq := uint16((rawS >> 1) & 0xFFFF)

		var err error
		rec, idx, err = d.Property(off, seq)
		if err != nil {
			return PropertyRecord{}, 0, err
		}
		found = true
		pos += tupleSize
		off = rec.ChildPointerOffset
	}
	if !found {
		return PropertyRecord{}, 0, newError(ErrInvalidSize, "locator has no sequence-number tuples")
	}
	return rec, idx, nil
}
