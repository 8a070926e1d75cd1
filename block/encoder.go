package block

import (
	"time"

	"github.com/arloliu/wordpack/endian"
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/internal/hash"
	"github.com/arloliu/wordpack/internal/options"
	"github.com/arloliu/wordpack/internal/pool"
	"github.com/arloliu/wordpack/pattern"
	"github.com/arloliu/wordpack/section"
)

// Encoder builds the block of one channel from words appended one at a time.
//
// Raw blocks collect the words in a pooled buffer. Pattern blocks feed them into a
// pattern.Encoder as they arrive, so the history window persists across the whole
// block. The second stage, if any, runs once in Finish.
//
// Note: The Encoder is NOT thread-safe. Independent channels may use independent
// encoders on separate goroutines.
//
// Note: The Encoder is NOT reusable. After Finish, every append returns
// ErrEncoderFinished.
type Encoder struct {
	*EncoderConfig

	raw      *pool.ByteBuffer
	pat      *pattern.Encoder
	checksum *hash.Checksum
	count    int
	finished bool
}

// NewEncoder creates a block encoder for the named channel.
//
// Parameters:
//   - channel: Channel name, hashed with xxHash64 into the block's channel ID
//   - startTime: Time of the first word, stored with microsecond precision
//   - opts: Optional configuration (encoding, compression, strength, addressing, endianness)
//
// Returns:
//   - *Encoder: New encoder ready for words
//   - error: ErrInvalidArgument for an empty channel name or invalid options
func NewEncoder(channel string, startTime time.Time, opts ...EncoderOption) (*Encoder, error) {
	id, err := channelID(channel)
	if err != nil {
		return nil, err
	}

	return NewEncoderID(id, startTime, opts...)
}

// NewEncoderID creates a block encoder for a channel known only by its ID.
func NewEncoderID(id uint64, startTime time.Time, opts ...EncoderOption) (*Encoder, error) {
	config := newEncoderConfig(id, startTime)
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}
	if err := config.setCodec(); err != nil {
		return nil, err
	}

	e := &Encoder{
		EncoderConfig: config,
		checksum:      hash.NewChecksum(),
	}

	switch config.header.Flag.Encoding() { //nolint: exhaustive
	case format.TypeRaw:
		e.raw = pool.GetBlockBuffer()
	case format.TypePattern:
		pat, err := pattern.NewEncoder(
			pattern.WithStrength(config.strength),
			pattern.WithAddressing(config.header.Flag.Addressing()),
		)
		if err != nil {
			return nil, err
		}
		e.pat = pat
	}

	return e, nil
}

// Append adds one word to the block.
//
// Returns:
//   - error: ErrEncoderFinished after Finish, ErrTooManyWords when the block is full
func (e *Encoder) Append(word uint32) error {
	if e.finished {
		return errs.Wrap(errs.ErrInvalidArgument, errs.ErrEncoderFinished)
	}
	if uint64(e.count) >= section.MaxWordCount {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrTooManyWords, "limit %d", uint64(section.MaxWordCount))
	}

	if e.raw != nil {
		e.raw.AppendWord(word)
	} else {
		e.pat.Compress(word)
	}
	e.checksum.AddWord(word)
	e.count++

	return nil
}

// AppendFloat32 adds a float32 sample laid out in the block's byte order.
func (e *Encoder) AppendFloat32(v float32) error {
	return e.Append(endian.WordFromFloat32(e.engine, v))
}

// AppendInt32 adds an int32 sample laid out in the block's byte order.
func (e *Encoder) AppendInt32(v int32) error {
	return e.Append(endian.WordFromInt32(e.engine, v))
}

// AppendBytes adds every word of data, which must be a multiple of 4 bytes long.
//
// The bytes are taken as they are: each group of 4 becomes one word exactly as the
// pattern codec would read it.
func (e *Encoder) AppendBytes(data []byte) error {
	if e.finished {
		return errs.Wrap(errs.ErrInvalidArgument, errs.ErrEncoderFinished)
	}
	if len(data)%pattern.WordSize != 0 {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidDataLength, "%d bytes", len(data))
	}
	if e.raw != nil {
		e.raw.Grow(len(data))
	} else {
		e.pat.Grow(len(data) / pattern.WordSize)
	}

	for i := 0; i < len(data); i += pattern.WordSize {
		if err := e.Append(endian.WordFromBytes(data[i:])); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of words appended so far.
func (e *Encoder) Len() int {
	return e.count
}

// Finish encodes the block and releases pooled buffers.
//
// Returns:
//   - Block: The finished block, which owns its bytes
//   - error: ErrEncoderFinished on a second call, or a second-stage compression error
func (e *Encoder) Finish() (Block, error) {
	if e.finished {
		return Block{}, errs.Wrap(errs.ErrInvalidArgument, errs.ErrEncoderFinished)
	}
	e.finished = true

	var encoded []byte
	if e.raw != nil {
		encoded = e.raw.Bytes()
		defer func() {
			pool.PutBlockBuffer(e.raw)
			e.raw = nil
		}()
	} else {
		encoded = e.pat.Bytes()
		defer func() { e.pat = nil }()
	}

	payload, err := e.codec.Compress(encoded)
	if err != nil {
		return Block{}, err
	}
	if uint64(len(payload)) > section.MaxPayloadSize {
		return Block{}, errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidPayloadSize, "%d bytes", len(payload))
	}

	header := *e.header
	header.Checksum = e.checksum.Sum64()
	header.WordCount = uint32(e.count)        //nolint: gosec
	header.EncodedSize = uint32(len(encoded)) //nolint: gosec
	header.PayloadSize = uint32(len(payload)) //nolint: gosec

	data := make([]byte, 0, section.BlockHeaderSize+len(payload))
	data = header.AppendTo(data)
	data = append(data, payload...)

	return Block{data: data, header: header}, nil
}

func channelID(channel string) (uint64, error) {
	if channel == "" {
		return 0, errs.Wrap(errs.ErrInvalidArgument, errs.ErrInvalidChannelName)
	}

	return hash.ID(channel), nil
}
