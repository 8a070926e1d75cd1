package section

import (
	"time"

	"github.com/arloliu/wordpack/errs"
)

// BlockHeader represents the fixed-size header at the start of a channel block.
type BlockHeader struct {
	// ChannelID is the xxHash64 of the channel name.
	ChannelID uint64 // byte offset 4-11
	// StartTime is the time of the first word, unix timestamp in microseconds.
	StartTime int64 // byte offset 12-19
	// WordCount is the number of words stored in the block.
	WordCount uint32 // byte offset 20-23
	// Checksum is the xxHash64 of the raw little-endian word bytes.
	Checksum uint64 // byte offset 24-31
	// EncodedSize is the payload size after the first stage, before the second.
	EncodedSize uint32 // byte offset 32-35
	// PayloadSize is the number of bytes that follow the header.
	PayloadSize uint32 // byte offset 36-39

	// Flag is a packed field for options, encoding and compression.
	Flag BlockFlag // byte offset 0-3
}

// NewBlockHeader creates a new BlockHeader for the given channel and start time.
// Counts, sizes and checksum are set when the encoder finishes.
func NewBlockHeader(channelID uint64, startTime time.Time) *BlockHeader {
	return &BlockHeader{
		ChannelID: channelID,
		StartTime: startTime.UnixMicro(),
		Flag:      NewBlockFlag(),
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 40 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 40 bytes, or flag validation errors
func (h *BlockHeader) Parse(data []byte) error {
	if len(data) != BlockHeaderSize {
		return errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidHeaderSize, "got %d bytes, want %d", len(data), BlockHeaderSize)
	}

	// Options itself is always little-endian; it decides the order of everything else.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.ChannelID = engine.Uint64(data[4:12])
	h.StartTime = int64(engine.Uint64(data[12:20])) //nolint: gosec
	h.WordCount = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])
	h.EncodedSize = engine.Uint32(data[32:36])
	h.PayloadSize = engine.Uint32(data[36:40])

	return nil
}

// Bytes serializes the BlockHeader into a new byte slice.
func (h *BlockHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, BlockHeaderSize))
}

// AppendTo appends the serialized header to b.
func (h *BlockHeader) AppendTo(b []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	b = append(b, byte(h.Flag.Options), byte(h.Flag.Options>>8), h.Flag.EncodingType, h.Flag.CompressionType)
	b = engine.AppendUint64(b, h.ChannelID)
	b = engine.AppendUint64(b, uint64(h.StartTime)) //nolint: gosec
	b = engine.AppendUint32(b, h.WordCount)
	b = engine.AppendUint64(b, h.Checksum)
	b = engine.AppendUint32(b, h.EncodedSize)
	b = engine.AppendUint32(b, h.PayloadSize)

	return b
}

// StartTimeAsTime returns the start time as a time.Time object.
func (h *BlockHeader) StartTimeAsTime() time.Time {
	return time.UnixMicro(h.StartTime)
}

// ParseBlockHeader parses a BlockHeader from the start of data.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 40 bytes)
//
// Returns:
//   - BlockHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseBlockHeader(data []byte) (BlockHeader, error) {
	if len(data) < BlockHeaderSize {
		return BlockHeader{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidHeaderSize,
			"got %d bytes, want at least %d", len(data), BlockHeaderSize)
	}

	h := BlockHeader{}
	if err := h.Parse(data[:BlockHeaderSize]); err != nil {
		return BlockHeader{}, err
	}

	return h, nil
}
