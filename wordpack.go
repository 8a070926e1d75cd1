// Package wordpack provides a lossless codec for streams of 4-byte words and a
// small block container for storing them per channel.
//
// The codec targets telemetry: readings that repeat, drift slowly or cycle with a
// short period. Each word is compared with a small history window of recent
// words; the closest one is referenced by slot and only the differing low-order
// bytes are written.
//
// # Core Features
//
//   - One-shot in-place compression of whole buffers, never larger than input+1
//   - Incremental encoder and decoder that persist their window across calls
//   - Compression strength 0..31, trading search cost for reach
//   - Per-channel blocks with xxHash64 checksums and optional Zstd, S2 or LZ4
//   - Block sets with a sorted channel index
//
// # Basic Usage
//
// Compressing a buffer in place:
//
//	buf := make([]byte, len(data)+1)
//	copy(buf, data)
//	n, err := wordpack.CompressBuffer(buf, 0, len(data))
//
//	out := make([]byte, wordpack.MaxDecompressedLen(n))
//	copy(out, buf[:n])
//	m, err := wordpack.DecompressBuffer(out, 0, n)
//
// Streaming words:
//
//	enc, _ := wordpack.NewStreamEncoder()
//	for _, w := range words {
//	    enc.Compress(w)
//	}
//
//	dec, _ := wordpack.NewStreamDecoder()
//	dec.AugmentBuffer(enc.Bytes())
//	for {
//	    w, err := dec.Decompress()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    ...
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The pattern package holds
// the codec itself and the block package the container; use them directly for
// fine-grained control.
package wordpack

import (
	"time"

	"github.com/arloliu/wordpack/block"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/internal/hash"
	"github.com/arloliu/wordpack/internal/options"
	"github.com/arloliu/wordpack/pattern"
)

// DefaultStrength is the compression strength used when none is configured.
const DefaultStrength = pattern.DefaultStrength

var archiveBlockOptions = []block.EncoderOption{
	block.WithEncoding(format.TypePattern),
	block.WithCompression(format.CompressionZstd),
}

// CompressBuffer compresses buf[offset:offset+dataLen] in place and returns the
// compressed length.
//
// dataLen must be a multiple of 4 and buf must have at least dataLen+1 bytes from
// offset. See pattern.CompressBuffer for details.
func CompressBuffer(buf []byte, offset, dataLen int, opts ...pattern.EncoderOption) (int, error) {
	return pattern.CompressBuffer(buf, offset, dataLen, opts...)
}

// DecompressBuffer decodes buf[offset:offset+compressedLen] in place and returns the
// decompressed length.
//
// buf must have at least MaxDecompressedLen(compressedLen) bytes from offset.
func DecompressBuffer(buf []byte, offset, compressedLen int, opts ...pattern.DecoderOption) (int, error) {
	return pattern.DecompressBuffer(buf, offset, compressedLen, opts...)
}

// MaxDecompressedLen returns the buffer size that DecompressBuffer needs for a
// compressed stream of compressedLen bytes.
func MaxDecompressedLen(compressedLen int) int {
	return pattern.MaxDecompressedLen(compressedLen)
}

// NewStreamEncoder creates an incremental word encoder.
//
// Defaults are strength 31 and linear addressing.
//
// Example:
//
//	enc, err := wordpack.NewStreamEncoder(pattern.WithStrength(7))
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewStreamEncoder(opts ...pattern.EncoderOption) (*pattern.Encoder, error) {
	return pattern.NewEncoder(opts...)
}

// NewStreamDecoder creates an incremental word decoder. It reads strength and
// addressing from the stream header.
func NewStreamDecoder(opts ...pattern.DecoderOption) (*pattern.Decoder, error) {
	return pattern.NewDecoder(opts...)
}

// NewBlockEncoder creates a block encoder for the named channel.
//
// Without options the block uses pattern encoding at strength 31 with no second
// stage.
//
// Available options:
//   - block.WithEncoding(format.TypeRaw|TypePattern)
//   - block.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - block.WithStrength(0..31)
//   - block.WithAddressing(format.AddressingCircular|AddressingLinear)
//   - block.WithLittleEndian() / block.WithBigEndian()
func NewBlockEncoder(channel string, startTime time.Time, opts ...block.EncoderOption) (*block.Encoder, error) {
	return block.NewEncoder(channel, startTime, opts...)
}

// NewArchiveBlockEncoder creates a block encoder that adds Zstd on top of the
// pattern codec, for blocks that are written once and kept for a long time.
// opts are applied after the archive defaults and may override them.
func NewArchiveBlockEncoder(channel string, startTime time.Time, opts ...block.EncoderOption) (*block.Encoder, error) {
	return block.NewEncoder(channel, startTime, options.Join(archiveBlockOptions, opts...)...)
}

// NewBlockDecoder creates a decoder for a serialized block.
func NewBlockDecoder(data []byte, opts ...block.DecoderOption) (*block.Decoder, error) {
	return block.NewDecoder(data, opts...)
}

// NewBlockSetBuilder creates an empty block set builder.
//
// Available options:
//   - block.WithSetLittleEndian() / block.WithSetBigEndian()
func NewBlockSetBuilder(opts ...block.SetOption) *block.SetBuilder {
	return block.NewSetBuilder(opts...)
}

// ParseBlockSet parses a serialized block set.
func ParseBlockSet(data []byte) (block.Set, error) {
	return block.ParseSet(data)
}

// ChannelID returns the 64-bit ID of a channel name, as stored in block headers.
//
// Example:
//
//	id := wordpack.ChannelID("grid.freq")
//	blk, err := set.BlockByID(id)
func ChannelID(name string) uint64 {
	return hash.ID(name)
}
