// Package block stores the words of telemetry channels as self-describing blocks.
//
// A block holds one channel's words behind a 40-byte header that records the
// channel ID, start time, word count, an xxHash64 checksum of the raw words and
// how the payload was produced. The payload goes through up to two stages:
//
//  1. Encoding: raw words, or the pattern codec (format.TypePattern, the default)
//  2. Compression: an optional general-purpose codec from the compress package
//
// # Encoding
//
//	enc, err := block.NewEncoder("grid.freq", time.Now(),
//	    block.WithStrength(15),
//	    block.WithCompression(format.CompressionS2),
//	)
//	for _, v := range samples {
//	    if err := enc.AppendFloat32(v); err != nil {
//	        return err
//	    }
//	}
//	blk, err := enc.Finish()
//
// # Decoding
//
//	dec, err := block.NewDecoder(blk.Bytes())
//	words, err := dec.Words()        // verified against count and checksum
//	for v := range dec.Floats() {    // streaming, no checksum
//	    ...
//	}
//	if err := dec.Err(); err != nil { // damaged payload ended the loop early
//	    return err
//	}
//
// # Block Sets
//
// SetBuilder packs many channel blocks into one buffer with a sorted index, and
// ParseSet reads it back with O(log n) lookups by channel name or ID.
//
// # Thread Safety
//
// Encoders and SetBuilders are not thread-safe. Each channel may be encoded by its
// own goroutine; the only shared state is the sync.Pool behind the raw word
// buffers. Decoders, Blocks and Sets are read-only and may be shared.
package block
