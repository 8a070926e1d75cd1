// Package compress provides the optional second compression stage for wordpack blocks.
//
// A block's words are first encoded by the pattern codec, which removes the
// redundancy between neighbouring words. Long archives often still contain
// repetition across larger distances (daily cycles, repeated bursts), which a
// general-purpose compressor can pick up. This package wraps those compressors
// behind one small interface:
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// # Algorithms
//
//   - format.CompressionNone: payload is stored as produced by the first stage
//   - format.CompressionZstd: best ratio, slowest encode; for cold archives
//   - format.CompressionS2: balanced speed and ratio
//   - format.CompressionLZ4: fastest decode
//
// Zstd is backed by github.com/klauspost/compress/zstd. Building with cgo and the
// gozstd tag switches to github.com/valyala/gozstd instead; both read each other's
// frames.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// Blocks choose the algorithm with block.WithCompression and record it in the block
// header, so decoders pick the matching codec automatically.
//
// # Errors
//
// Decompression failures are reported as errs.ErrCorruptStream, the same class the
// pattern decoder uses, so callers handle a damaged block uniformly.
//
// # Thread Safety
//
// All built-in codecs are stateless values backed by sync.Pool and may be shared
// across goroutines.
package compress
