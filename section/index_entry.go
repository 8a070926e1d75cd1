package section

import (
	"github.com/arloliu/wordpack/endian"
	"github.com/arloliu/wordpack/errs"
)

// IndexEntry locates one channel block inside a block set. It is a fixed 16 bytes.
type IndexEntry struct {
	// ChannelID is the xxHash64 of the channel name.
	//
	// Offset: 0, Size: 8 bytes
	ChannelID uint64

	// Offset is the start of the block, relative to the set payload.
	//
	// Offset: 8, Size: 4 bytes
	Offset uint32

	// Length is the full block length, header included.
	//
	// Offset: 12, Size: 4 bytes
	Length uint32
}

// AppendTo appends the entry to b using engine.
func (e IndexEntry) AppendTo(b []byte, engine endian.EndianEngine) []byte {
	b = engine.AppendUint64(b, e.ChannelID)
	b = engine.AppendUint32(b, e.Offset)
	b = engine.AppendUint32(b, e.Length)

	return b
}

// End returns the payload offset just past the block.
func (e IndexEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// ParseIndexEntry parses an IndexEntry from data.
//
// Returns ErrInvalidIndexEntry if data is shorter than 16 bytes.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidIndexEntry,
			"got %d bytes, want %d", len(data), IndexEntrySize)
	}

	return IndexEntry{
		ChannelID: engine.Uint64(data[0:8]),
		Offset:    engine.Uint32(data[8:12]),
		Length:    engine.Uint32(data[12:16]),
	}, nil
}
