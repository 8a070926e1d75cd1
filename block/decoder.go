package block

import (
	"errors"
	"io"
	"iter"
	"sync"

	"github.com/arloliu/wordpack/compress"
	"github.com/arloliu/wordpack/endian"
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/internal/hash"
	"github.com/arloliu/wordpack/internal/pool"
	"github.com/arloliu/wordpack/pattern"
	"github.com/arloliu/wordpack/section"
)

// Decoder reads the words of one block.
//
// NewDecoder validates the header and undoes the second stage; the first stage is
// decoded lazily by Words or the iterators.
//
// A Decoder is safe for concurrent use by multiple goroutines. The only state it
// changes after construction is the error recorded by its iterators.
type Decoder struct {
	header  section.BlockHeader
	payload []byte
	engine  endian.EndianEngine
	cfg     DecoderConfig

	mu  sync.Mutex
	err error
}

// NewDecoder creates a decoder for a serialized block.
//
// Parameters:
//   - data: Serialized block, header included
//   - opts: Optional settings (WithChecksumVerification, WithExpectedChannel)
//
// Returns:
//   - *Decoder: Decoder ready to produce words
//   - error: ErrCorruptStream for a damaged block, ErrInvalidArgument for invalid
//     options or a block of an unexpected channel
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return nil, err
	}

	blk, err := ParseBlock(data)
	if err != nil {
		return nil, err
	}
	header := blk.header

	if cfg.expectChannel && header.ChannelID != cfg.channelID {
		return nil, errs.Wrapf(errs.ErrInvalidArgument, errs.ErrChannelNotFound,
			"block holds channel %#016x, want %#016x", header.ChannelID, cfg.channelID)
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(data[section.BlockHeaderSize:])
	if err != nil {
		return nil, err
	}
	if len(payload) != int(header.EncodedSize) {
		return nil, errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidPayloadSize,
			"encoded payload has %d bytes, header says %d", len(payload), header.EncodedSize)
	}
	if header.Flag.Encoding() == format.TypeRaw && uint64(len(payload)) != uint64(header.WordCount)*pattern.WordSize {
		return nil, errs.Wrapf(errs.ErrCorruptStream, errs.ErrWordCountMismatch,
			"raw payload of %d bytes for %d words", len(payload), header.WordCount)
	}

	return &Decoder{
		header:  header,
		payload: payload,
		engine:  header.Flag.GetEndianEngine(),
		cfg:     *cfg,
	}, nil
}

// Header returns the block header.
func (d *Decoder) Header() section.BlockHeader {
	return d.header
}

// ChannelID returns the block's channel ID.
func (d *Decoder) ChannelID() uint64 {
	return d.header.ChannelID
}

// Len returns the number of words the header announces.
func (d *Decoder) Len() int {
	return int(d.header.WordCount)
}

// Words decodes every word of the block.
//
// The word count is always checked against the header; the checksum is checked
// unless disabled with WithChecksumVerification(false).
//
// Returns:
//   - []uint32: The block's words in order
//   - error: ErrCorruptStream, wrapping ErrWordCountMismatch or ErrChecksumMismatch
//     when the payload disagrees with the header
func (d *Decoder) Words() ([]uint32, error) {
	raw, release, err := d.rawBytes()
	if err != nil {
		return nil, err
	}
	defer release()

	if d.cfg.verifyChecksum {
		if sum := hash.Sum(raw); sum != d.header.Checksum {
			return nil, errs.Wrapf(errs.ErrCorruptStream, errs.ErrChecksumMismatch,
				"computed %#016x, header %#016x", sum, d.header.Checksum)
		}
	}

	words := make([]uint32, len(raw)/pattern.WordSize)
	for i := range words {
		words[i] = endian.WordFromBytes(raw[i*pattern.WordSize:])
	}

	return words, nil
}

// rawBytes returns the block's words as little-endian bytes. Pattern payloads are
// decoded into a pooled buffer that release hands back.
func (d *Decoder) rawBytes() ([]byte, func(), error) {
	if d.header.Flag.Encoding() == format.TypeRaw {
		return d.payload, func() {}, nil
	}

	need := int(d.header.WordCount) * pattern.WordSize
	if need > pattern.MaxDecompressedLen(len(d.payload)) {
		return nil, nil, errs.Wrapf(errs.ErrCorruptStream, errs.ErrWordCountMismatch,
			"%d byte stream cannot hold %d words", len(d.payload), d.header.WordCount)
	}

	bb := pool.GetBlockBuffer()
	bb.Grow(need)
	out := bb.B[:need]
	release := func() { pool.PutBlockBuffer(bb) }

	n, err := pattern.DecodeTo(out, d.payload, pattern.WithExpectedAddressing(d.header.Flag.Addressing()))
	switch {
	case errors.Is(err, errs.ErrBufferTooSmall):
		release()
		return nil, nil, errs.Wrapf(errs.ErrCorruptStream, errs.ErrWordCountMismatch,
			"stream holds more than %d words", d.header.WordCount)
	case err != nil:
		release()
		return nil, nil, errs.Wrap(errs.ErrCorruptStream, err)
	case n != need:
		release()
		return nil, nil, errs.Wrapf(errs.ErrCorruptStream, errs.ErrWordCountMismatch,
			"decoded %d words, header says %d", n/pattern.WordSize, d.header.WordCount)
	}

	return out, release, nil
}

// All returns an iterator over the block's words.
//
// Pattern blocks are decoded incrementally, one word per step, without
// materializing the block. Iteration stops at the first decoding error, or when the
// stream disagrees with the header's word count; Err reports why. The checksum is
// not verified, use Words for that.
func (d *Decoder) All() iter.Seq[uint32] {
	if d.header.Flag.Encoding() == format.TypeRaw {
		return func(yield func(uint32) bool) {
			for i := 0; i+pattern.WordSize <= len(d.payload); i += pattern.WordSize {
				if !yield(endian.WordFromBytes(d.payload[i:])) {
					return
				}
			}
		}
	}

	return func(yield func(uint32) bool) {
		dec, err := pattern.NewDecoder(pattern.WithExpectedAddressing(d.header.Flag.Addressing()))
		if err != nil {
			d.setErr(err)
			return
		}
		dec.AugmentBuffer(d.payload)

		for range d.header.WordCount {
			word, err := dec.Decompress()
			if err != nil {
				d.setErr(d.streamErr(err, dec.Count()))
				return
			}
			if !yield(word) {
				return
			}
		}

		if dec.Buffered() > 0 {
			d.setErr(errs.Wrapf(errs.ErrCorruptStream, errs.ErrWordCountMismatch,
				"%d stream bytes left after %d words", dec.Buffered(), d.header.WordCount))
		}
	}
}

// Err returns the first error that stopped one of the decoder's iterators, or nil.
//
// An iterator that ends early because of a damaged payload looks the same to the
// range loop as a short block, so callers check Err after ranging.
func (d *Decoder) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.err
}

func (d *Decoder) setErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err == nil {
		d.err = err
	}
}

// streamErr classifies an error returned by the pattern decoder after decoded words.
func (d *Decoder) streamErr(err error, decoded int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, errs.ErrIncompleteToken) {
		return errs.Wrapf(errs.ErrCorruptStream, errs.ErrWordCountMismatch,
			"stream ends after %d words, header says %d", decoded, d.header.WordCount)
	}

	return errs.Wrap(errs.ErrCorruptStream, err)
}

// Floats returns an iterator over the words read as float32 samples in the block's
// byte order. Check Err after ranging.
func (d *Decoder) Floats() iter.Seq[float32] {
	return func(yield func(float32) bool) {
		for word := range d.All() {
			if !yield(endian.Float32FromWord(d.engine, word)) {
				return
			}
		}
	}
}

// Int32s returns an iterator over the words read as int32 samples in the block's
// byte order. Check Err after ranging.
func (d *Decoder) Int32s() iter.Seq[int32] {
	return func(yield func(int32) bool) {
		for word := range d.All() {
			if !yield(endian.Int32FromWord(d.engine, word)) {
				return
			}
		}
	}
}
