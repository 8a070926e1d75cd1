package block

import (
	"slices"
	"sync"
	"testing"

	"github.com/arloliu/wordpack/endian"
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/pattern"
	"github.com/arloliu/wordpack/section"
	"github.com/stretchr/testify/require"
)

func TestDecoder_RoundTripMatrix(t *testing.T) {
	samples := sineSamples(5, 777)
	encodings := []format.EncodingType{format.TypeRaw, format.TypePattern}
	compressions := []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4}

	for _, enc := range encodings {
		for _, comp := range compressions {
			for _, big := range []bool{false, true} {
				name := enc.String() + "/" + comp.String()
				opts := []EncoderOption{WithEncoding(enc), WithCompression(comp), WithStrength(11)}
				if big {
					name += "/big"
					opts = append(opts, WithBigEndian())
				}

				t.Run(name, func(t *testing.T) {
					blk := encodeFloats(t, "matrix", samples, opts...)

					dec, err := NewDecoder(blk.Bytes())
					require.NoError(t, err)
					require.Equal(t, len(samples), dec.Len())
					require.Equal(t, blk.ChannelID(), dec.ChannelID())

					words, err := dec.Words()
					require.NoError(t, err)
					require.Len(t, words, len(samples))

					require.Equal(t, samples, slices.Collect(dec.Floats()))

					streamed := slices.Collect(dec.All())
					require.Equal(t, words, streamed)
					require.NoError(t, dec.Err())
				})
			}
		}
	}
}

func TestDecoder_Int32s(t *testing.T) {
	values := []int32{0, -1, 1, 1 << 20, -(1 << 30), 7, 7, 7}

	for _, opt := range []EncoderOption{WithLittleEndian(), WithBigEndian()} {
		enc, err := NewEncoder("ints", testStart, opt)
		require.NoError(t, err)
		for _, v := range values {
			require.NoError(t, enc.AppendInt32(v))
		}
		blk, err := enc.Finish()
		require.NoError(t, err)

		dec, err := blk.Decoder()
		require.NoError(t, err)
		require.Equal(t, values, slices.Collect(dec.Int32s()))
	}
}

func TestDecoder_BigEndianWordsMatchBigEndianBytes(t *testing.T) {
	blk := encodeFloats(t, "be", []float32{1.5}, WithBigEndian(), WithEncoding(format.TypeRaw))

	payload := blk.Bytes()[section.BlockHeaderSize:]
	require.Equal(t, endian.AppendFloat32(endian.GetBigEndianEngine(), nil, 1.5), payload)
}

func TestDecoder_EmptyBlock(t *testing.T) {
	for _, enc := range []format.EncodingType{format.TypeRaw, format.TypePattern} {
		for _, comp := range []format.CompressionType{format.CompressionNone, format.CompressionZstd} {
			e, err := NewEncoder("empty", testStart, WithEncoding(enc), WithCompression(comp))
			require.NoError(t, err)
			blk, err := e.Finish()
			require.NoError(t, err)

			dec, err := NewDecoder(blk.Bytes())
			require.NoError(t, err)
			words, err := dec.Words()
			require.NoError(t, err)
			require.Empty(t, words)
			require.Empty(t, slices.Collect(dec.All()))
		}
	}
}

func TestDecoder_ExpectedChannel(t *testing.T) {
	blk := encodeFloats(t, "grid.freq", []float32{1, 2})

	_, err := NewDecoder(blk.Bytes(), WithExpectedChannel("grid.freq"))
	require.NoError(t, err)

	_, err = NewDecoder(blk.Bytes(), WithExpectedChannel("grid.volt"))
	require.ErrorIs(t, err, errs.ErrChannelNotFound)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = NewDecoder(blk.Bytes(), WithExpectedChannel(""))
	require.ErrorIs(t, err, errs.ErrInvalidChannelName)
}

func TestDecoder_ChecksumMismatch(t *testing.T) {
	blk := encodeFloats(t, "sum", sineSamples(9, 100), WithEncoding(format.TypeRaw))
	data := slices.Clone(blk.Bytes())
	data[section.BlockHeaderSize+5] ^= 0x01

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	_, err = dec.Words()
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	require.ErrorIs(t, err, errs.ErrCorruptStream)

	dec, err = NewDecoder(data, WithChecksumVerification(false))
	require.NoError(t, err)
	_, err = dec.Words()
	require.NoError(t, err)
}

func TestDecoder_CorruptBlocks(t *testing.T) {
	good := encodeFloats(t, "corrupt", sineSamples(11, 50)).Bytes()

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"short", func(b []byte) []byte { return b[:10] }, errs.ErrInvalidHeaderSize},
		{"truncated payload", func(b []byte) []byte { return b[:len(b)-1] }, errs.ErrInvalidPayloadSize},
		{"bad magic", func(b []byte) []byte { b[1] = 0; return b }, errs.ErrInvalidMagicNumber},
		{"bad compression", func(b []byte) []byte { b[3] = 9; return b }, errs.ErrInvalidHeaderFlags},
		{"encoded size", func(b []byte) []byte { b[32]++; return b }, errs.ErrInvalidPayloadSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(tt.mutate(slices.Clone(good)))
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, errs.ErrCorruptStream)
		})
	}
}

func TestDecoder_WordCountMismatch(t *testing.T) {
	good := encodeFloats(t, "count", sineSamples(13, 50)).Bytes()

	fewer := slices.Clone(good)
	fewer[20]-- // header claims 49 words
	dec, err := NewDecoder(fewer)
	require.NoError(t, err)
	_, err = dec.Words()
	require.ErrorIs(t, err, errs.ErrWordCountMismatch)
	require.Len(t, slices.Collect(dec.All()), 49)
	require.ErrorIs(t, dec.Err(), errs.ErrWordCountMismatch)

	more := slices.Clone(good)
	more[20]++
	dec, err = NewDecoder(more)
	require.NoError(t, err)
	_, err = dec.Words()
	require.ErrorIs(t, err, errs.ErrWordCountMismatch)
	require.Len(t, slices.Collect(dec.All()), 50)
	require.ErrorIs(t, dec.Err(), errs.ErrWordCountMismatch)
	require.ErrorIs(t, dec.Err(), errs.ErrCorruptStream)

	huge := slices.Clone(good)
	huge[23] = 0x7F
	dec, err = NewDecoder(huge)
	require.NoError(t, err)
	_, err = dec.Words()
	require.ErrorIs(t, err, errs.ErrWordCountMismatch)
}

func TestDecoder_AddressingMismatchIsCorrupt(t *testing.T) {
	blk := encodeFloats(t, "addr", sineSamples(17, 20), WithAddressing(format.AddressingCircular))
	data := slices.Clone(blk.Bytes())
	data[0] |= section.AddressingMask // header now claims linear

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	_, err = dec.Words()
	require.ErrorIs(t, err, errs.ErrCorruptStream)
	require.ErrorIs(t, err, errs.ErrAddressingMismatch)

	require.Empty(t, slices.Collect(dec.All()))
	require.ErrorIs(t, dec.Err(), errs.ErrAddressingMismatch)
}

func TestDecoder_IteratorReportsCorruptToken(t *testing.T) {
	blk := encodeFloats(t, "token", sineSamples(23, 40))
	data := slices.Clone(blk.Bytes())
	// stream header, raw first word, then the first token header
	data[section.BlockHeaderSize+1+pattern.WordSize] = 0xE0 // residual length 7

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.NoError(t, dec.Err())

	got := slices.Collect(dec.Floats())
	require.Len(t, got, 1)
	require.ErrorIs(t, dec.Err(), errs.ErrCorruptStream)

	_, err = dec.Words()
	require.ErrorIs(t, err, errs.ErrCorruptStream)
}

func TestDecoder_IteratorEarlyStop(t *testing.T) {
	blk := encodeFloats(t, "stop", sineSamples(19, 100))
	dec, err := blk.Decoder()
	require.NoError(t, err)

	n := 0
	for range dec.All() {
		n++
		if n == 10 {
			break
		}
	}
	require.Equal(t, 10, n)
}

func TestDecoder_ConcurrentChannels(t *testing.T) {
	const channels = 8

	blocks := make([]Block, channels)
	errsByChannel := make([]error, channels)
	var wg sync.WaitGroup
	for ch := range channels {
		wg.Add(1)
		go func(ch int) {
			defer wg.Done()

			enc, err := NewEncoder(string(rune('a'+ch)), testStart, WithEncoding(format.TypeRaw))
			if err != nil {
				errsByChannel[ch] = err
				return
			}
			for _, v := range sineSamples(int64(ch), 300) {
				if err := enc.AppendFloat32(v); err != nil {
					errsByChannel[ch] = err
					return
				}
			}
			blocks[ch], errsByChannel[ch] = enc.Finish()
		}(ch)
	}
	wg.Wait()

	for ch := range channels {
		require.NoError(t, errsByChannel[ch])
		dec, err := blocks[ch].Decoder()
		require.NoError(t, err)
		require.Equal(t, sineSamples(int64(ch), 300), slices.Collect(dec.Floats()))
	}
}
