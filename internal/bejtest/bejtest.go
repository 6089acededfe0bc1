// Package bejtest builds small in-memory binary BEJ dictionaries for use as
// test fixtures, mirroring the hand-rolled dictionary tables from spec.md's
// worked scenarios.
package bejtest

import "encoding/binary"

// Entry is one property record plus its name, used to build a Dictionary
// fixture with Build.
type Entry struct {
	Name               string
	Format             byte
	SequenceNumber     uint16
	ChildPointerOffset uint16
	ChildCount         uint16
}

// Build assembles a binary BEJ dictionary buffer from entries, entry 0 being
// the root. It lays out the name pool in entry order.
func Build(entries []Entry) []byte {
	const headerSize = 12
	const recordSize = 10

	names := make([]byte, 0, 64)
	nameOffsets := make([]uint16, len(entries))
	for i, e := range entries {
		nameOffsets[i] = uint16(len(names))
		names = append(names, []byte(e.Name)...)
		names = append(names, 0)
	}

	buf := make([]byte, headerSize+len(entries)*recordSize+len(names))
	buf[0] = 0x00 // versionTag
	buf[1] = 0x00 // flags: not truncated
	binary.LittleEndian.PutUint16(buf[2:4], uint16(len(entries)))
	binary.LittleEndian.PutUint32(buf[4:8], 1) // schemaVersion
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(buf)))

	for i, e := range entries {
		off := headerSize + i*recordSize
		rec := buf[off : off+recordSize]
		rec[0] = e.Format
		binary.LittleEndian.PutUint16(rec[1:3], e.SequenceNumber)
		binary.LittleEndian.PutUint16(rec[3:5], e.ChildPointerOffset)
		binary.LittleEndian.PutUint16(rec[5:7], e.ChildCount)
		nameLen := 0
		if len(e.Name) > 0 {
			nameLen = len(e.Name) + 1 // content plus NUL terminator, per the dictionary's name-length convention
		}
		if nameLen > 255 {
			nameLen = 255
		}
		rec[7] = byte(nameLen)
		binary.LittleEndian.PutUint16(rec[8:10], nameOffsets[i])
	}

	namesOff := headerSize + len(entries)*recordSize
	copy(buf[namesOff:], names)
	return buf
}

// formatByte packs a principal type nibble (no flags set) the same way
// pldm.FormatTuple does, without importing the root package (which would
// create an import cycle with bej's own tests).
func formatByte(principalType byte) byte {
	return principalType << 4
}

const (
	typeSet     = 0
	typeArray   = 1
	typeInteger = 3
	typeEnum    = 4
	typeString  = 5
)

// DummySimple returns a minimal dictionary describing:
//
//	{ "Identifier": <integer>, "Name": <string> }
//
// matching the flat two-leaf shape used by spec.md's Scenario A/B examples.
func DummySimple() []byte {
	return Build([]Entry{
		{Name: "", Format: formatByte(typeSet), SequenceNumber: 0, ChildPointerOffset: 1, ChildCount: 2},
		{Name: "Identifier", Format: formatByte(typeInteger), SequenceNumber: 0},
		{Name: "Name", Format: formatByte(typeString), SequenceNumber: 1},
	})
}

// Annotation returns a minimal shared annotation dictionary containing a
// single "@Redfish.AllowableValues" property, enough to exercise
// PropertyAnnotation sections in tests.
func Annotation() []byte {
	return Build([]Entry{
		{Name: "", Format: formatByte(typeSet), SequenceNumber: 0, ChildPointerOffset: 1, ChildCount: 1},
		{Name: "@Redfish.AllowableValues", Format: formatByte(typeArray), SequenceNumber: 0, ChildPointerOffset: 2, ChildCount: 1},
		{Name: "", Format: formatByte(typeString), SequenceNumber: 0},
	})
}

// DriveOEM returns a dictionary modelling a nested Drive-like resource with
// a child Set and a child Array, matching spec.md's worked ChildArrayProperty
// scenario: { "Id": <integer>, "Oem": { "Drives": [ <integer>, ... ] } }.
func DriveOEM() []byte {
	return Build([]Entry{
		{Name: "", Format: formatByte(typeSet), SequenceNumber: 0, ChildPointerOffset: 1, ChildCount: 2},
		{Name: "Id", Format: formatByte(typeInteger), SequenceNumber: 0},
		{Name: "Oem", Format: formatByte(typeSet), SequenceNumber: 1, ChildPointerOffset: 3, ChildCount: 1},
		{Name: "Drives", Format: formatByte(typeArray), SequenceNumber: 0, ChildPointerOffset: 4, ChildCount: 1},
		{Name: "", Format: formatByte(typeInteger), SequenceNumber: 0},
	})
}
