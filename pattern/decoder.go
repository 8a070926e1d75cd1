package pattern

import (
	"errors"
	"io"
	"slices"

	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/internal/window"
)

// MaxDecompressedLen returns the buffer size needed to decode a stream of
// compressedLen bytes in place.
//
// The smallest token is a single header byte standing for a whole word, so a token
// stream of n bytes (header, raw first word, n-5 tokens) holds at most n-4 words.
// Streams shorter than 5 bytes can only be empty or stored. The result is never
// below compressedLen, so the compressed bytes always fit in the same buffer.
//
// Callers size destination buffers with this value before DecompressBuffer.
func MaxDecompressedLen(compressedLen int) int {
	switch {
	case compressedLen <= 0:
		return 0
	case compressedLen < headerLen+WordSize:
		return compressedLen
	default:
		return max(compressedLen, WordSize*(compressedLen-WordSize))
	}
}

// DecompressBuffer decodes buf[offset:offset+compressedLen] in place and returns
// the number of decompressed bytes written to buf[offset:].
//
// len(buf)-offset must be at least MaxDecompressedLen(compressedLen); a smaller
// buffer fails with ErrBufferTooSmall before anything is decoded.
//
// Parameters:
//   - buf: Buffer holding the compressed stream, overwritten with the words
//   - offset: Start of the compressed stream within buf
//   - compressedLen: Length of the compressed stream
//   - opts: Optional decoder options (WithExpectedStrength, WithExpectedAddressing)
//
// Returns:
//   - int: Decompressed length in bytes
//   - error: ErrInvalidArgument, ErrBufferTooSmall or ErrCorruptStream
func DecompressBuffer(buf []byte, offset, compressedLen int, opts ...DecoderOption) (int, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return 0, err
	}

	if offset < 0 || offset > len(buf) || compressedLen < 0 || compressedLen > len(buf)-offset {
		return 0, errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidOffset,
			"offset %d, compressed length %d, buffer length %d", offset, compressedLen, len(buf))
	}

	need := MaxDecompressedLen(compressedLen)
	if len(buf)-offset < need {
		return 0, errs.Detailf(errs.ErrBufferTooSmall, "capacity %d, need %d", len(buf)-offset, need)
	}

	src := slices.Clone(buf[offset : offset+compressedLen])

	return decodeBlock(buf[offset:], src, cfg)
}

// DecodeTo decodes src into dst and returns the number of bytes written.
//
// dst and src must not overlap. Decoding stops with ErrBufferTooSmall as soon as the
// next word would not fit into dst.
func DecodeTo(dst, src []byte, opts ...DecoderOption) (int, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return 0, err
	}

	return decodeBlock(dst, src, cfg)
}

// AppendDecode decodes src and appends the words to dst.
func AppendDecode(dst, src []byte, opts ...DecoderOption) ([]byte, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return dst, err
	}

	start := len(dst)
	dst = slices.Grow(dst, MaxDecompressedLen(len(src)))
	out := dst[start : start+MaxDecompressedLen(len(src))]

	n, err := decodeBlock(out, src, cfg)
	if err != nil {
		return dst[:start], err
	}

	return dst[:start+n], nil
}

func decodeBlock(dst, src []byte, cfg *DecoderConfig) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	h, err := parseStreamHeader(src[0])
	if err != nil {
		return 0, err
	}
	if err := cfg.check(h); err != nil {
		return 0, err
	}

	body := src[headerLen:]
	if h.stored {
		if len(body)%WordSize != 0 {
			return 0, corruptf("stored payload of %d bytes is not word aligned", len(body))
		}
		if len(dst) < len(body) {
			return 0, errs.Detailf(errs.ErrBufferTooSmall, "capacity %d, need %d", len(dst), len(body))
		}

		return copy(dst, body), nil
	}

	if len(body) == 0 {
		return 0, nil
	}
	if len(body) < WordSize {
		return 0, corruptf("truncated first word, %d bytes", len(body))
	}
	if len(dst) < WordSize {
		return 0, errs.Detailf(errs.ErrBufferTooSmall, "capacity %d, need at least %d", len(dst), WordSize)
	}

	win := window.New(h.strength, h.addressing)
	win.Insert(le.Uint32(body))
	n := copy(dst, body[:WordSize])

	for pos := WordSize; pos < len(body); {
		word, used, err := decodeToken(&win, body[pos:])
		if err != nil {
			if errors.Is(err, errs.ErrIncompleteToken) {
				return n, corruptf("truncated token at offset %d", headerLen+pos)
			}

			return n, err
		}
		if n+WordSize > len(dst) {
			return n, errs.Detailf(errs.ErrBufferTooSmall, "capacity %d exhausted at word %d", len(dst), n/WordSize)
		}

		le.PutUint32(dst[n:], word)
		n += WordSize
		pos += used
		win.Insert(word)
	}

	return n, nil
}

// decodeToken decodes the token at the start of src against win without updating it.
//
// Returns ErrIncompleteToken when src holds only part of the token.
func decodeToken(win *window.Window, src []byte) (word uint32, used int, err error) {
	h := src[0]
	if !window.ValidHeader(h) {
		return 0, 0, corruptf("token header %#02x has residual length above %d", h, WordSize)
	}

	residualLen, slot := window.UnpackHeader(h)
	ref, ok := win.At(slot)
	if !ok {
		return 0, 0, corruptf("back-reference to slot %d with %d window entries", slot, win.Len())
	}

	used = window.TokenLen(h)
	if len(src) < used {
		return 0, 0, errs.ErrIncompleteToken
	}

	return ref ^ window.Residual(src[1:], residualLen), used, nil
}

// Decoder reconstructs words from a compressed stream that arrives in pieces.
//
// AugmentBuffer appends compressed bytes; each Decompress call returns the next
// word. The decoder reads the stream header itself, so it accepts streams from both
// the one-shot functions and the incremental Encoder, in either addressing mode.
//
// A corrupt stream error is sticky: every later Decompress call returns it again.
//
// Decoder is not safe for concurrent use.
type Decoder struct {
	buf       []byte
	pos       int
	win       window.Window
	cfg       DecoderConfig
	header    streamHeader
	hasHeader bool
	count     int
	err       error
}

// NewDecoder creates an incremental decoder with an empty source buffer.
//
// Parameters:
//   - opts: Optional decoder options (WithExpectedStrength, WithExpectedAddressing)
//
// Returns:
//   - *Decoder: New decoder
//   - error: ErrInvalidArgument for invalid options
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: *cfg}, nil
}

// AugmentBuffer appends compressed bytes to the decoder's source.
//
// The data is copied, so the caller may reuse it after the call. Consumed bytes
// are dropped from the internal buffer as it grows.
func (d *Decoder) AugmentBuffer(data []byte) {
	if d.pos > 0 && d.pos >= len(d.buf)/2 {
		n := copy(d.buf, d.buf[d.pos:])
		d.buf = d.buf[:n]
		d.pos = 0
	}

	d.buf = append(d.buf, data...)
}

// Decompress returns the next word of the stream.
//
// Returns:
//   - io.EOF when every buffered byte has been consumed
//   - ErrIncompleteToken when only part of the next word is buffered; nothing is
//     consumed, so the call can be retried after AugmentBuffer
//   - an ErrCorruptStream or ErrInvalidArgument error when the stream is unusable
func (d *Decoder) Decompress() (uint32, error) {
	if d.err != nil {
		return 0, d.err
	}

	if !d.hasHeader {
		if d.pos >= len(d.buf) {
			return 0, io.EOF
		}
		if err := d.readHeader(d.buf[d.pos]); err != nil {
			d.err = err
			return 0, err
		}
		d.pos += headerLen
	}

	rest := d.buf[d.pos:]
	if len(rest) == 0 {
		return 0, io.EOF
	}

	var word uint32
	if d.header.stored || d.count == 0 {
		if len(rest) < WordSize {
			return 0, errs.ErrIncompleteToken
		}
		word = le.Uint32(rest)
		d.pos += WordSize
	} else {
		w, used, err := decodeToken(&d.win, rest)
		if err != nil {
			if !errors.Is(err, errs.ErrIncompleteToken) {
				d.err = err
			}

			return 0, err
		}
		word = w
		d.pos += used
	}

	if !d.header.stored {
		d.win.Insert(word)
	}
	d.count++

	return word, nil
}

// Buffered returns the number of compressed bytes not yet consumed.
func (d *Decoder) Buffered() int {
	return len(d.buf) - d.pos
}

// Count returns the number of words decoded so far.
func (d *Decoder) Count() int {
	return d.count
}

// Reset prepares the decoder for a new stream, keeping its options and buffer memory.
func (d *Decoder) Reset() {
	d.buf = d.buf[:0]
	d.pos = 0
	d.hasHeader = false
	d.header = streamHeader{}
	d.count = 0
	d.err = nil
}

func (d *Decoder) readHeader(b byte) error {
	h, err := parseStreamHeader(b)
	if err != nil {
		return err
	}
	if err := d.cfg.check(h); err != nil {
		return err
	}

	d.header = h
	d.hasHeader = true
	d.win = window.New(h.strength, h.addressing)

	return nil
}
