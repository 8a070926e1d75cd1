package block

import (
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/internal/collision"
	"github.com/arloliu/wordpack/internal/hash"
	"github.com/arloliu/wordpack/internal/options"
	"github.com/arloliu/wordpack/internal/pool"
	"github.com/arloliu/wordpack/section"
)

// SetBuilder packs the blocks of many channels into one block set.
//
// Channel names are tracked so that adding a channel twice, or two channels whose
// names share an xxHash64 ID, is rejected at Add time.
//
// Note: The SetBuilder is NOT thread-safe.
type SetBuilder struct {
	tracker   *collision.Tracker
	blocks    map[uint64]Block
	size      uint64
	bigEndian bool
}

// SetOption represents a functional option for configuring a SetBuilder.
type SetOption = options.Option[*SetBuilder]

// WithSetBigEndian writes the set header and index integers big-endian. Blocks keep
// the byte order they were encoded with.
func WithSetBigEndian() SetOption {
	return options.NoError(func(s *SetBuilder) {
		s.bigEndian = true
	})
}

// WithSetLittleEndian writes the set header and index integers little-endian.
// It is the default option.
func WithSetLittleEndian() SetOption {
	return options.NoError(func(s *SetBuilder) {
		s.bigEndian = false
	})
}

// NewSetBuilder creates an empty set builder.
func NewSetBuilder(opts ...SetOption) *SetBuilder {
	s := &SetBuilder{
		tracker: collision.NewTracker(),
		blocks:  make(map[uint64]Block),
	}
	_ = options.Apply(s, opts...) // set options never fail

	return s
}

// Add adds the block of the named channel.
//
// Returns:
//   - error: ErrInvalidArgument wrapping ErrInvalidChannelName (empty name or a
//     block of another channel), ErrChannelExists, ErrHashCollision or ErrTooManyChannels
func (s *SetBuilder) Add(channel string, blk Block) error {
	id, err := channelID(channel)
	if err != nil {
		return err
	}
	if blk.ChannelID() != id {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidChannelName,
			"block of channel %#016x added as %q", blk.ChannelID(), channel)
	}
	if err := s.checkCapacity(blk); err != nil {
		return err
	}
	if err := s.tracker.TrackChannel(channel, id); err != nil {
		return errs.Wrap(errs.ErrInvalidArgument, err)
	}

	s.put(blk)

	return nil
}

// AddBlock adds a block by its channel ID alone.
func (s *SetBuilder) AddBlock(blk Block) error {
	if err := s.checkCapacity(blk); err != nil {
		return err
	}
	if err := s.tracker.TrackID(blk.ChannelID()); err != nil {
		return errs.Wrap(errs.ErrInvalidArgument, err)
	}

	s.put(blk)

	return nil
}

func (s *SetBuilder) checkCapacity(blk Block) error {
	if len(s.blocks) >= section.MaxChannels {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrTooManyChannels, "limit %d", section.MaxChannels)
	}
	if s.size+uint64(blk.Size()) > section.MaxPayloadSize {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidPayloadSize,
			"set payload would exceed %d bytes", uint64(section.MaxPayloadSize))
	}

	return nil
}

func (s *SetBuilder) put(blk Block) {
	s.blocks[blk.ChannelID()] = blk
	s.size += uint64(blk.Size())
}

// Len returns the number of blocks added so far.
func (s *SetBuilder) Len() int {
	return len(s.blocks)
}

// Finish serializes the set. The builder may keep being used afterwards.
func (s *SetBuilder) Finish() []byte {
	ids := slices.Sorted(maps.Keys(s.blocks))

	header := section.NewSetHeader(len(ids))
	header.PayloadSize = uint32(s.size) //nolint: gosec
	if s.bigEndian {
		header.WithBigEndian()
	}
	engine := header.GetEndianEngine()

	bb := pool.GetSetBuffer()
	defer pool.PutSetBuffer(bb)
	bb.Grow(int(header.PayloadOffset) + int(s.size))

	bb.B = header.AppendTo(bb.B)
	var offset uint32
	for _, id := range ids {
		blk := s.blocks[id]
		entry := section.IndexEntry{ChannelID: id, Offset: offset, Length: uint32(blk.Size())} //nolint: gosec
		bb.B = entry.AppendTo(bb.B, engine)
		offset += entry.Length
	}
	for _, id := range ids {
		bb.MustWrite(s.blocks[id].Bytes())
	}

	return slices.Clone(bb.Bytes())
}

// Set is a parsed block set. Lookups slice the set's bytes without copying.
type Set struct {
	data    []byte
	header  section.SetHeader
	entries []section.IndexEntry
}

// ParseSet parses the header and index of a serialized block set.
//
// Returns ErrCorruptStream if the layout is inconsistent. Blocks are validated
// lazily by the lookups.
func ParseSet(data []byte) (Set, error) {
	header, err := section.ParseSetHeader(data)
	if err != nil {
		return Set{}, err
	}

	engine := header.GetEndianEngine()
	entries := make([]section.IndexEntry, header.ChannelCount)
	for i := range entries {
		pos := section.SetHeaderSize + i*section.IndexEntrySize
		entry, err := section.ParseIndexEntry(data[pos:], engine)
		if err != nil {
			return Set{}, err
		}
		if i > 0 && entry.ChannelID <= entries[i-1].ChannelID {
			return Set{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidIndexEntry,
				"entry %d is out of order", i)
		}
		if entry.End() > uint64(header.PayloadSize) {
			return Set{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidIndexEntry,
				"entry %d ends at %d, payload has %d bytes", i, entry.End(), header.PayloadSize)
		}
		entries[i] = entry
	}

	return Set{data: data, header: header, entries: entries}, nil
}

// Len returns the number of blocks in the set.
func (s Set) Len() int {
	return len(s.entries)
}

// Channels returns the channel IDs in the set in ascending order.
func (s Set) Channels() []uint64 {
	ids := make([]uint64, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ChannelID
	}

	return ids
}

// Block returns the block of the named channel.
func (s Set) Block(channel string) (Block, error) {
	return s.BlockByID(hash.ID(channel))
}

// BlockByID returns the block of the channel with the given ID.
//
// Returns ErrChannelNotFound if the set has no such channel, or ErrCorruptStream
// if the stored block is damaged.
func (s Set) BlockByID(id uint64) (Block, error) {
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].ChannelID >= id })
	if i == len(s.entries) || s.entries[i].ChannelID != id {
		return Block{}, errs.Detailf(errs.ErrChannelNotFound, "channel ID %#016x", id)
	}

	entry := s.entries[i]
	start := uint64(s.header.PayloadOffset) + uint64(entry.Offset)
	blk, err := ParseBlock(s.data[start : start+uint64(entry.Length)])
	if err != nil {
		return Block{}, err
	}
	if blk.ChannelID() != id {
		return Block{}, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidIndexEntry,
			"index names %#016x, block holds %#016x", id, blk.ChannelID())
	}

	return blk, nil
}

// All returns an iterator over the set's blocks in channel ID order.
//
// A damaged block is yielded as a zero Block together with its error and iteration
// continues with the next entry, so one bad block does not hide the rest of the set.
func (s Set) All() iter.Seq2[Block, error] {
	return func(yield func(Block, error) bool) {
		for _, e := range s.entries {
			if !yield(s.BlockByID(e.ChannelID)) {
				return
			}
		}
	}
}
