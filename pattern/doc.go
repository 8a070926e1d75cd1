// Package pattern implements a lossless codec for streams of fixed-width 4-byte words,
// such as 32-bit integer or float32 sensor samples.
//
// Instrumentation data tends to repeat itself: adjacent samples are often identical
// or differ only in their low-order bytes. The codec keeps a small history window of
// recently seen words and stores each new word as a reference to the closest window
// entry plus the bytes that differ. No entropy coding is involved, so both directions
// are a handful of XORs and byte copies per word.
//
// # Stream Format
//
// Every stream starts with a one-byte header:
//
//	bits 0-4  compression strength (0..31), window capacity is strength+1
//	bit  5    window addressing (0 circular, 1 linear)
//	bit  6    reserved, always 0
//	bit  7    stored: the words follow verbatim
//
// A token stream then holds the first word as 4 raw bytes, followed by one token per
// remaining word. A token is a header byte (residual length in bits 5-7, window slot in
// bits 0-4) and that many residual bytes, least significant first. The decoded word is
// window[slot] XOR residual. After each word both sides insert it into their window,
// so encoder and decoder windows stay identical.
//
// # One-shot API
//
// CompressBuffer compresses a word-aligned region of a buffer in place. The buffer
// must hold at least one byte more than the data, because the output never exceeds
// dataLen+1 bytes: when the token form would be longer, the encoder switches to the
// stored form.
//
//	buf := make([]byte, len(samples)+1)
//	copy(buf, samples)
//	n, err := pattern.CompressBuffer(buf, 0, len(samples))
//	if err != nil {
//	    return err
//	}
//	compressed := buf[:n]
//
// Before decoding in place, size the buffer with MaxDecompressedLen:
//
//	out := make([]byte, pattern.MaxDecompressedLen(len(compressed)))
//	copy(out, compressed)
//	n, err = pattern.DecompressBuffer(out, 0, len(compressed))
//
// EncodeTo and DecodeTo are the same operations with distinct source and destination.
//
// # Incremental API
//
// Encoder accepts one word at a time, for producers that do not know the sample
// count in advance. Decoder consumes compressed bytes as they arrive through
// AugmentBuffer and returns one word per Decompress call.
//
//	enc, _ := pattern.NewEncoder()
//	for _, v := range readings {
//	    enc.Compress(v)
//	}
//
//	dec, _ := pattern.NewDecoder()
//	dec.AugmentBuffer(enc.Bytes())
//	for {
//	    word, err := dec.Decompress()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    ...
//	}
//
// # Window Addressing
//
// The one-shot API defaults to circular addressing, where tokens name ring slots.
// The incremental API defaults to linear addressing, where tokens name positions
// counted from the oldest entry. The two produce different bytes for the same input
// but decode to the same words. The mode is recorded in the stream header, so either
// decoder reads either stream; WithAddressing makes the choice explicit and
// WithExpectedAddressing lets a decoder insist on it.
//
// # Thread Safety
//
// Encoder and Decoder instances are not safe for concurrent use. Distinct instances
// share nothing and may run in parallel, typically one per channel. The package-level
// functions are safe for concurrent use.
package pattern
