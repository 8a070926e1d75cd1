package wordpack

import (
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wordpack/block"
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/pattern"
)

func wordBytes(words ...uint32) []byte {
	out := make([]byte, 0, len(words)*4)
	for _, w := range words {
		out = binary.LittleEndian.AppendUint32(out, w)
	}

	return out
}

func TestCompressBuffer_RoundTrip(t *testing.T) {
	data := wordBytes(0xFF, 0xAD, 0xBC, 0x5D, 0x99, 0x84, 0xA8, 0x3D, 0x45, 0x02, 0)

	// the trailing zero word is the spare room, not data
	dataLen := len(data) - 4

	buf := slices.Clone(data)
	n, err := CompressBuffer(buf, 0, dataLen)
	require.NoError(t, err)
	require.Equal(t, 23, n)

	out := make([]byte, MaxDecompressedLen(n))
	copy(out, buf[:n])
	m, err := DecompressBuffer(out, 0, n)
	require.NoError(t, err)
	require.Equal(t, data[:dataLen], out[:m])
}

func TestCompressBuffer_Errors(t *testing.T) {
	_, err := CompressBuffer(make([]byte, 8), 0, 3)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = CompressBuffer(make([]byte, 8), 0, 8)
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)

	_, err = CompressBuffer(make([]byte, 8), 0, 4, pattern.WithStrength(40))
	require.ErrorIs(t, err, errs.ErrInvalidStrength)
}

func TestStreamEncoderDecoder(t *testing.T) {
	words := []uint32{10, 11, 10, 11, 10, 0xFFFF0000, 0xFFFF0001, 10}

	enc, err := NewStreamEncoder(pattern.WithStrength(3))
	require.NoError(t, err)
	for _, w := range words {
		enc.Compress(w)
	}
	require.Equal(t, len(words), enc.Count())
	require.GreaterOrEqual(t, MaxDecompressedLen(enc.Len()), len(words)*4)

	dec, err := NewStreamDecoder(pattern.WithExpectedStrength(3))
	require.NoError(t, err)
	dec.AugmentBuffer(enc.Bytes())

	var got []uint32
	for {
		w, err := dec.Decompress()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, w)
	}
	require.Equal(t, words, got)
}

func TestBlockEncoders(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	enc, err := NewBlockEncoder("grid.freq", start)
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, enc.Header().Flag.Compression())

	archive, err := NewArchiveBlockEncoder("grid.freq", start)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, archive.Header().Flag.Compression())

	override, err := NewArchiveBlockEncoder("grid.freq", start, block.WithCompression(format.CompressionLZ4))
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZ4, override.Header().Flag.Compression())

	// the shared defaults must not pick up the override
	again, err := NewArchiveBlockEncoder("grid.freq", start)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, again.Header().Flag.Compression())
}

func TestBlockSetRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := map[string][]float32{
		"grid.freq": {50.01, 50.02, 50.01, 49.99},
		"grid.volt": {230.1, 230.1, 230.2},
	}

	builder := NewBlockSetBuilder()
	for name, values := range samples {
		enc, err := NewArchiveBlockEncoder(name, start)
		require.NoError(t, err)
		for _, v := range values {
			require.NoError(t, enc.AppendFloat32(v))
		}
		blk, err := enc.Finish()
		require.NoError(t, err)
		require.NoError(t, builder.Add(name, blk))
	}

	set, err := ParseBlockSet(builder.Finish())
	require.NoError(t, err)

	for name, values := range samples {
		blk, err := set.BlockByID(ChannelID(name))
		require.NoError(t, err)

		dec, err := NewBlockDecoder(blk.Bytes())
		require.NoError(t, err)
		require.Equal(t, values, slices.Collect(dec.Floats()))
		require.NoError(t, dec.Err())
	}
}

func TestChannelID(t *testing.T) {
	require.Equal(t, ChannelID("grid.freq"), ChannelID("grid.freq"))
	require.NotEqual(t, ChannelID("grid.freq"), ChannelID("grid.volt"))
	require.Equal(t, uint8(31), DefaultStrength)
}
