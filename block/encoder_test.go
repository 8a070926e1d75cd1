package block

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/internal/hash"
	"github.com/arloliu/wordpack/section"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// sineSamples produces a slowly varying signal with a small amount of jitter.
func sineSamples(seed int64, n int) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, n)
	for i := range out {
		out[i] = 50 + float32(math.Sin(float64(i)/20)) + float32(rng.Intn(4))/100
	}

	return out
}

func encodeFloats(t *testing.T, channel string, samples []float32, opts ...EncoderOption) Block {
	t.Helper()

	enc, err := NewEncoder(channel, testStart, opts...)
	require.NoError(t, err)
	for _, v := range samples {
		require.NoError(t, enc.AppendFloat32(v))
	}
	blk, err := enc.Finish()
	require.NoError(t, err)

	return blk
}

func TestNewEncoder_Defaults(t *testing.T) {
	enc, err := NewEncoder("grid.freq", testStart)
	require.NoError(t, err)

	h := enc.Header()
	require.Equal(t, hash.ID("grid.freq"), h.ChannelID)
	require.Equal(t, testStart.UnixMicro(), h.StartTime)
	require.Equal(t, format.TypePattern, h.Flag.Encoding())
	require.Equal(t, format.CompressionNone, h.Flag.Compression())
	require.Equal(t, format.AddressingLinear, h.Flag.Addressing())
	require.True(t, h.Flag.IsLittleEndian())
	require.Equal(t, uint8(31), enc.Strength())
}

func TestNewEncoder_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"empty channel", func() error { _, err := NewEncoder("", testStart); return err }, errs.ErrInvalidChannelName},
		{"strength", func() error { _, err := NewEncoder("c", testStart, WithStrength(32)); return err }, errs.ErrInvalidStrength},
		{"encoding", func() error {
			_, err := NewEncoder("c", testStart, WithEncoding(format.EncodingType(7)))
			return err
		}, errs.ErrUnsupportedEncoding},
		{"addressing", func() error {
			_, err := NewEncoder("c", testStart, WithAddressing(format.AddressingMode(3)))
			return err
		}, errs.ErrInvalidAddressing},
		{"compression", func() error {
			_, err := NewEncoder("c", testStart, WithCompression(format.CompressionType(0)))
			return err
		}, errs.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, errs.ErrInvalidArgument)
		})
	}
}

func TestEncoder_FinishHeader(t *testing.T) {
	samples := sineSamples(1, 500)
	blk := encodeFloats(t, "grid.freq", samples, WithStrength(7))

	h := blk.Header()
	require.Equal(t, uint32(len(samples)), h.WordCount)
	require.Equal(t, len(samples), blk.Len())
	require.Equal(t, section.BlockHeaderSize+int(h.PayloadSize), blk.Size())
	require.Equal(t, h.EncodedSize, h.PayloadSize)
	require.Less(t, int(h.EncodedSize), len(samples)*4)
	require.True(t, blk.StartTime().Equal(testStart))

	parsed, err := ParseBlock(blk.Bytes())
	require.NoError(t, err)
	require.Equal(t, h, parsed.Header())
}

func TestEncoder_RawEncoding(t *testing.T) {
	enc, err := NewEncoder("raw", testStart, WithEncoding(format.TypeRaw))
	require.NoError(t, err)
	require.NoError(t, enc.Append(0x11223344))
	require.NoError(t, enc.AppendInt32(-1))

	blk, err := enc.Finish()
	require.NoError(t, err)
	require.Equal(t, uint32(8), blk.Header().EncodedSize)
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11, 0xFF, 0xFF, 0xFF, 0xFF}, blk.Bytes()[section.BlockHeaderSize:])
}

func TestEncoder_AppendBytes(t *testing.T) {
	enc, err := NewEncoder("bytes", testStart)
	require.NoError(t, err)

	err = enc.AppendBytes([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidDataLength)
	require.Equal(t, 0, enc.Len())

	require.NoError(t, enc.AppendBytes([]byte{1, 0, 0, 0, 2, 0, 0, 0}))
	require.Equal(t, 2, enc.Len())
}

func TestEncoder_Finished(t *testing.T) {
	enc, err := NewEncoder("done", testStart, WithEncoding(format.TypeRaw))
	require.NoError(t, err)
	require.NoError(t, enc.Append(1))

	_, err = enc.Finish()
	require.NoError(t, err)

	require.ErrorIs(t, enc.Append(2), errs.ErrEncoderFinished)
	require.ErrorIs(t, enc.AppendBytes([]byte{0, 0, 0, 0}), errs.ErrEncoderFinished)
	_, err = enc.Finish()
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
}

func TestEncoder_SecondStageShrinksRepetitiveBlocks(t *testing.T) {
	// a repeating 64-word cycle is longer than the window, so only the second
	// stage can exploit it
	cycle := sineSamples(3, 64)
	samples := make([]float32, 0, 64*64)
	for range 64 {
		samples = append(samples, cycle...)
	}

	plain := encodeFloats(t, "cycle", samples, WithStrength(3))
	for _, comp := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		packed := encodeFloats(t, "cycle", samples, WithStrength(3), WithCompression(comp))
		require.Less(t, packed.Size(), plain.Size(), comp.String())
		require.Equal(t, plain.Header().EncodedSize, packed.Header().EncodedSize)
		require.Equal(t, plain.Header().Checksum, packed.Header().Checksum)
	}
}
