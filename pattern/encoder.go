package pattern

import (
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/internal/window"
)

// CompressBuffer compresses buf[offset:offset+dataLen] in place and returns the
// compressed length. The compressed bytes overwrite buf[offset:offset+n].
//
// Contract:
//   - dataLen must be a multiple of 4 (ErrInvalidArgument otherwise)
//   - len(buf)-offset must be at least dataLen+1 (ErrBufferTooSmall otherwise);
//     the extra byte holds the stream header
//
// The result n always satisfies 0 < n <= dataLen+1. Incompressible input is stored
// verbatim behind the header rather than expanded.
//
// Without options the default strength (31) and circular addressing are used.
//
// Parameters:
//   - buf: Buffer holding the words, overwritten with the compressed stream
//   - offset: Start of the data within buf
//   - dataLen: Number of data bytes to compress
//   - opts: Optional encoder options (WithStrength, WithAddressing)
//
// Returns:
//   - int: Compressed length in bytes
//   - error: ErrInvalidArgument or ErrBufferTooSmall, nothing is modified on error
func CompressBuffer(buf []byte, offset, dataLen int, opts ...EncoderOption) (int, error) {
	cfg, err := newEncoderConfig(format.AddressingCircular, opts)
	if err != nil {
		return 0, err
	}

	if offset < 0 || offset > len(buf) || dataLen < 0 || dataLen > len(buf)-offset {
		return 0, errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidOffset,
			"offset %d, data length %d, buffer length %d", offset, dataLen, len(buf))
	}
	if err := checkEncodeArgs(len(buf)-offset, dataLen); err != nil {
		return 0, err
	}

	// Token output may run ahead of the words still to be read, so encode into a
	// scratch buffer and copy back.
	scratch := make([]byte, dataLen+headerLen)
	n := encodeBlock(scratch, buf[offset:offset+dataLen], cfg)
	copy(buf[offset:], scratch[:n])

	return n, nil
}

// EncodeTo compresses src into dst and returns the compressed length.
//
// dst and src must not overlap. dst must hold at least len(src)+1 bytes and
// len(src) must be a multiple of 4.
//
// Parameters:
//   - dst: Destination buffer
//   - src: Word-aligned source data
//   - opts: Optional encoder options (WithStrength, WithAddressing)
//
// Returns:
//   - int: Compressed length in bytes
//   - error: ErrInvalidArgument or ErrBufferTooSmall
func EncodeTo(dst, src []byte, opts ...EncoderOption) (int, error) {
	cfg, err := newEncoderConfig(format.AddressingCircular, opts)
	if err != nil {
		return 0, err
	}

	if err := checkEncodeArgs(len(dst), len(src)); err != nil {
		return 0, err
	}

	return encodeBlock(dst, src, cfg), nil
}

// MaxCompressedLen returns the largest compressed size of dataLen bytes produced by
// the one-shot functions.
func MaxCompressedLen(dataLen int) int {
	return dataLen + headerLen
}

func checkEncodeArgs(capacity, dataLen int) error {
	if dataLen%WordSize != 0 {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidDataLength, "%d bytes", dataLen)
	}
	if capacity < dataLen+headerLen {
		return errs.Detailf(errs.ErrBufferTooSmall, "capacity %d, need %d", capacity, dataLen+headerLen)
	}

	return nil
}

// encodeBlock writes the stream for src into dst. dst must hold len(src)+1 bytes.
func encodeBlock(dst, src []byte, cfg *EncoderConfig) int {
	h := cfg.header()
	dst[0] = h.byte()
	if len(src) == 0 {
		return headerLen
	}

	limit := len(src) + headerLen
	win := window.New(cfg.strength, cfg.addressing)

	first := le.Uint32(src)
	n := headerLen + copy(dst[headerLen:], src[:WordSize])
	win.Insert(first)

	for i := WordSize; i < len(src); i += WordSize {
		word := le.Uint32(src[i:])
		slot, residualLen := win.Match(word)
		if n+1+residualLen > limit {
			return encodeStored(dst, src, h)
		}

		ref, _ := win.At(slot)
		n += window.PutToken(dst[n:], slot, word^ref, residualLen)
		win.Insert(word)
	}

	return n
}

func encodeStored(dst, src []byte, h streamHeader) int {
	h.stored = true
	dst[0] = h.byte()

	return headerLen + copy(dst[headerLen:], src)
}

// Encoder compresses words one at a time into an internal, growable buffer.
//
// The first Compress call stores its word raw; every later word becomes a token
// against the encoder's history window. The window and buffer persist across calls
// until Reset.
//
// Encoder is not safe for concurrent use.
type Encoder struct {
	buf   []byte
	win   window.Window
	cfg   EncoderConfig
	count int
}

// NewEncoder creates an incremental encoder.
//
// Without options the default strength (31) and linear addressing are used.
//
// Parameters:
//   - opts: Optional encoder options (WithStrength, WithAddressing)
//
// Returns:
//   - *Encoder: Encoder holding only the stream header
//   - error: ErrInvalidArgument for invalid options
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg, err := newEncoderConfig(format.AddressingLinear, opts)
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		cfg: *cfg,
		win: window.New(cfg.strength, cfg.addressing),
		buf: make([]byte, 0, 64),
	}
	e.buf = append(e.buf, cfg.header().byte())

	return e, nil
}

// Compress encodes a single word and appends the resulting bytes to the internal buffer.
func (e *Encoder) Compress(word uint32) {
	if e.count == 0 {
		e.buf = le.AppendUint32(e.buf, word)
	} else {
		slot, residualLen := e.win.Match(word)
		ref, _ := e.win.At(slot)
		e.buf = window.AppendToken(e.buf, slot, word^ref, residualLen)
	}

	e.win.Insert(word)
	e.count++
}

// CompressBytes encodes every word of data, which must be a multiple of 4 bytes long.
//
// Returns ErrInvalidArgument before encoding anything when the length is wrong.
func (e *Encoder) CompressBytes(data []byte) error {
	if len(data)%WordSize != 0 {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidDataLength, "%d bytes", len(data))
	}

	e.Grow(len(data) / WordSize)
	for i := 0; i < len(data); i += WordSize {
		e.Compress(le.Uint32(data[i:]))
	}

	return nil
}

// Grow makes room for at least n more words without reallocating.
func (e *Encoder) Grow(n int) {
	need := n * window.MaxTokenLen
	if cap(e.buf)-len(e.buf) >= need {
		return
	}

	buf := make([]byte, len(e.buf), len(e.buf)+need)
	copy(buf, e.buf)
	e.buf = buf
}

// Bytes returns the compressed stream written so far.
//
// The returned slice is valid until the next call to Compress, CompressBytes or Reset.
// The caller must not modify it.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the logical compressed length in bytes, including the stream header.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Count returns the number of words encoded since creation or the last Reset.
func (e *Encoder) Count() int {
	return e.count
}

// Strength returns the encoder's compression strength.
func (e *Encoder) Strength() uint8 {
	return e.cfg.strength
}

// Addressing returns the encoder's window addressing mode.
func (e *Encoder) Addressing() format.AddressingMode {
	return e.cfg.addressing
}

// Reset discards all encoded data and empties the history window, keeping the
// configuration and the allocated buffer.
func (e *Encoder) Reset() {
	e.buf = append(e.buf[:0], e.cfg.header().byte())
	e.win.Reset()
	e.count = 0
}
