package section

import (
	"github.com/arloliu/wordpack/endian"
	"github.com/arloliu/wordpack/errs"
)

// SetHeader represents the fixed-size header at the start of a block set.
//
// A set is laid out as header, index (ChannelCount entries) and the concatenated
// blocks. Index offsets are relative to PayloadOffset.
type SetHeader struct {
	// Options holds the set magic number and the endianness bit.
	Options uint16 // byte offset 0-1, bytes 2-3 reserved
	// ChannelCount is the number of blocks in the set.
	ChannelCount uint32 // byte offset 4-7
	// PayloadOffset is the byte offset of the first block.
	PayloadOffset uint32 // byte offset 8-11
	// PayloadSize is the total size of all blocks.
	PayloadSize uint32 // byte offset 12-15
}

// NewSetHeader creates a little-endian set header for count channels.
func NewSetHeader(count int) SetHeader {
	return SetHeader{
		Options:       MagicSetV1Opt,
		ChannelCount:  uint32(count),                                //nolint: gosec
		PayloadOffset: uint32(SetHeaderSize + count*IndexEntrySize), //nolint: gosec
	}
}

// IsLittleEndian returns whether the set's integers are little-endian.
func (h SetHeader) IsLittleEndian() bool {
	return h.Options&EndiannessMask == 0
}

// WithBigEndian switches the set to big-endian integers.
func (h *SetHeader) WithBigEndian() {
	h.Options |= EndiannessMask
}

// GetEndianEngine returns the endian engine for the set's integers.
func (h SetHeader) GetEndianEngine() endian.EndianEngine {
	if h.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// AppendTo appends the serialized header to b.
func (h SetHeader) AppendTo(b []byte) []byte {
	engine := h.GetEndianEngine()

	b = append(b, byte(h.Options), byte(h.Options>>8), 0, 0)
	b = engine.AppendUint32(b, h.ChannelCount)
	b = engine.AppendUint32(b, h.PayloadOffset)
	b = engine.AppendUint32(b, h.PayloadSize)

	return b
}

// ParseSetHeader parses a SetHeader from the start of data and checks it against
// the length of data.
func ParseSetHeader(data []byte) (SetHeader, error) {
	if len(data) < SetHeaderSize {
		return SetHeader{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidHeaderSize,
			"got %d bytes, want at least %d", len(data), SetHeaderSize)
	}

	h := SetHeader{Options: uint16(data[0]) | (uint16(data[1]) << 8)}
	if h.Options&MagicNumberMask != MagicSetV1Opt {
		return SetHeader{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidMagicNumber, "got %#04x", h.Options&MagicNumberMask)
	}
	if h.Options&^(MagicNumberMask|EndiannessMask) != 0 || data[2] != 0 || data[3] != 0 {
		return SetHeader{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidHeaderFlags, "reserved bits set")
	}

	engine := h.GetEndianEngine()
	h.ChannelCount = engine.Uint32(data[4:8])
	h.PayloadOffset = engine.Uint32(data[8:12])
	h.PayloadSize = engine.Uint32(data[12:16])

	wantOffset := uint64(SetHeaderSize) + uint64(h.ChannelCount)*IndexEntrySize
	if uint64(h.PayloadOffset) != wantOffset {
		return SetHeader{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidHeaderSize,
			"payload offset %d, want %d", h.PayloadOffset, wantOffset)
	}
	if uint64(h.PayloadOffset)+uint64(h.PayloadSize) != uint64(len(data)) {
		return SetHeader{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidPayloadSize,
			"header covers %d bytes, data has %d", uint64(h.PayloadOffset)+uint64(h.PayloadSize), len(data))
	}

	return h, nil
}
