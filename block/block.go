package block

import (
	"time"

	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/section"
)

// Block is one encoded channel block: a 40-byte header and its payload.
//
// Blocks are immutable values; the byte slice must not be modified.
type Block struct {
	data   []byte
	header section.BlockHeader
}

// ParseBlock validates the header of data and wraps it as a Block without decoding
// the payload. data is retained, not copied.
//
// Returns:
//   - Block: The parsed block
//   - error: ErrCorruptStream for a bad header or a length that disagrees with it
func ParseBlock(data []byte) (Block, error) {
	header, err := section.ParseBlockHeader(data)
	if err != nil {
		return Block{}, err
	}

	want := uint64(section.BlockHeaderSize) + uint64(header.PayloadSize)
	if uint64(len(data)) != want {
		return Block{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidPayloadSize,
			"block has %d bytes, header describes %d", len(data), want)
	}

	return Block{data: data, header: header}, nil
}

// Bytes returns the serialized block.
func (b Block) Bytes() []byte {
	return b.data
}

// Header returns the parsed block header.
func (b Block) Header() section.BlockHeader {
	return b.header
}

// ChannelID returns the xxHash64 ID of the block's channel.
func (b Block) ChannelID() uint64 {
	return b.header.ChannelID
}

// Len returns the number of words in the block.
func (b Block) Len() int {
	return int(b.header.WordCount)
}

// StartTime returns the time of the block's first word.
func (b Block) StartTime() time.Time {
	return b.header.StartTimeAsTime()
}

// Size returns the serialized size in bytes.
func (b Block) Size() int {
	return len(b.data)
}

// Decoder creates a Decoder over the block.
func (b Block) Decoder(opts ...DecoderOption) (*Decoder, error) {
	return NewDecoder(b.data, opts...)
}
