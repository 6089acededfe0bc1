// Package sflv parses the Sequence/Format/Length/Value tuple that is the
// on-wire unit of a BEJ encoded stream.
package sflv

import (
	"errors"

	"github.com/openbmc/libbej/internal/nnint"
)

// DictionaryTypeMask is the LSB of a tupleS nnint value: 0 selects the major
// schema dictionary, 1 selects the shared annotation dictionary.
const DictionaryTypeMask = 0x01

// SeqNumShift is the number of bits to shift a tupleS nnint value right,
// after masking off the dictionary-selector bit, to recover the sequence
// number.
const SeqNumShift = 1

// ErrShortBuffer is returned when a stream doesn't have enough bytes left to
// hold a complete SFLV tuple.
var ErrShortBuffer = errors.New("sflv: truncated tuple")

// Tuple is a parsed SFLV record. Value is a sub-slice of the stream passed to
// Parse; it is not copied.
type Tuple struct {
	// Selector is the dictionary-selector bit extracted from tupleS: 0 for
	// the major schema dictionary, 1 for the annotation dictionary.
	Selector uint8
	// SequenceNumber is the 16-bit sequence number extracted from tupleS,
	// with the selector bit already stripped and shifted out.
	SequenceNumber uint16
	// Format is the raw one-byte format tuple (flags nibble | type nibble).
	Format byte
	// HeaderSize is the number of bytes occupied by S, F and L combined,
	// i.e. the offset of Value relative to the start of the tuple.
	HeaderSize int
	// Value is the tuple's value bytes.
	Value []byte
	// ValueEndOffset is the absolute stream offset immediately following
	// Value, computed from the streamOffset passed to Parse.
	ValueEndOffset int
}

// Parse reads the SFLV tuple starting at stream[streamOffset:]. streamOffset
// is the tuple's absolute position within the full encoded stream (used only
// to compute Tuple.ValueEndOffset).
func Parse(stream []byte, streamOffset int) (Tuple, error) {
	seg := stream[streamOffset:]
	if len(seg) < 1 {
		return Tuple{}, ErrShortBuffer
	}
	seqSize := int(seg[0])
	formatOffset := 1 + seqSize
	if len(seg) < formatOffset+2 {
		return Tuple{}, ErrShortBuffer
	}
	lengthNnintOffset := formatOffset + 1
	if len(seg) <= lengthNnintOffset {
		return Tuple{}, ErrShortBuffer
	}
	lengthSize := int(seg[lengthNnintOffset])
	valueOffset := lengthNnintOffset + 1 + lengthSize
	if len(seg) < valueOffset {
		return Tuple{}, ErrShortBuffer
	}

	rawS := nnint.ReadUint64LE(seg[1:], seqSize)
	selector := uint8(rawS & DictionaryTypeMask)
	seq := uint16((rawS &^ DictionaryTypeMask) >> SeqNumShift)

	valueLength := int(nnint.ReadUint64LE(seg[lengthNnintOffset+1:], lengthSize))
	if len(seg) < valueOffset+valueLength {
		return Tuple{}, ErrShortBuffer
	}

	return Tuple{
		Selector:       selector,
		SequenceNumber: seq,
		Format:         seg[formatOffset],
		HeaderSize:     valueOffset,
		Value:          seg[valueOffset : valueOffset+valueLength],
		ValueEndOffset: streamOffset + valueOffset + valueLength,
	}, nil
}
