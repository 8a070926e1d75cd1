package window

import (
	"testing"

	"github.com/arloliu/wordpack/format"
	"github.com/stretchr/testify/require"
)

func TestResidualLen(t *testing.T) {
	tests := []struct {
		x    uint32
		want int
	}{
		{0, 0},
		{1, 1},
		{0xFF, 1},
		{0x100, 2},
		{0xFFFF, 2},
		{0x10000, 3},
		{0xFFFFFF, 3},
		{0x1000000, 4},
		{0xFFFFFFFF, 4},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ResidualLen(tt.x), "x=%#x", tt.x)
	}
}

func TestNew_Capacity(t *testing.T) {
	w := New(0, format.AddressingCircular)
	require.Equal(t, 1, w.Cap())
	require.Equal(t, 0, w.Len())

	w = New(31, format.AddressingLinear)
	require.Equal(t, 32, w.Cap())
	require.Equal(t, format.AddressingLinear, w.Mode())

	w = New(200, format.AddressingMode(9))
	require.Equal(t, MaxEntries, w.Cap())
	require.Equal(t, format.AddressingCircular, w.Mode())
}

func TestMatch_EmptyWindow(t *testing.T) {
	w := New(31, format.AddressingCircular)
	slot, n := w.Match(0x12345678)
	require.Equal(t, -1, slot)
	require.Equal(t, WordSize, n)
}

func TestMatch_PrefersShortestResidual(t *testing.T) {
	w := New(31, format.AddressingCircular)
	w.Insert(0xAA000000)
	w.Insert(0x12340000)
	w.Insert(0xBB000000)

	slot, n := w.Match(0x123400FF)
	require.Equal(t, 1, slot)
	require.Equal(t, 1, n)

	slot, n = w.Match(0xBB000000)
	require.Equal(t, 2, slot)
	require.Equal(t, 0, n)
}

func TestMatch_TieBreaksToMostRecent(t *testing.T) {
	for _, mode := range []format.AddressingMode{format.AddressingCircular, format.AddressingLinear} {
		t.Run(mode.String(), func(t *testing.T) {
			w := New(31, mode)
			w.Insert(0x00000010)
			w.Insert(0x00000020)
			w.Insert(0x00000030)

			// every entry leaves a 1 byte residual
			slot, n := w.Match(0x00000001)
			require.Equal(t, 1, n)
			require.Equal(t, 2, slot)
		})
	}
}

func TestInsert_CircularWraps(t *testing.T) {
	w := New(2, format.AddressingCircular)
	for i := uint32(1); i <= 4; i++ {
		w.Insert(i)
	}

	require.Equal(t, 3, w.Len())
	// ring: slot0=4 (overwrote 1), slot1=2, slot2=3
	v, ok := w.At(0)
	require.True(t, ok)
	require.Equal(t, uint32(4), v)
	v, ok = w.At(1)
	require.True(t, ok)
	require.Equal(t, uint32(2), v)

	slot, n := w.Match(4)
	require.Equal(t, 0, slot)
	require.Equal(t, 0, n)
}

func TestInsert_LinearShifts(t *testing.T) {
	w := New(2, format.AddressingLinear)
	for i := uint32(1); i <= 4; i++ {
		w.Insert(i)
	}

	require.Equal(t, 3, w.Len())
	for i, want := range []uint32{2, 3, 4} {
		v, ok := w.At(i)
		require.True(t, ok)
		require.Equal(t, want, v)
	}

	slot, n := w.Match(4)
	require.Equal(t, 2, slot)
	require.Equal(t, 0, n)
}

func TestAt_OutOfRange(t *testing.T) {
	w := New(31, format.AddressingCircular)
	w.Insert(7)

	_, ok := w.At(1)
	require.False(t, ok)
	_, ok = w.At(-1)
	require.False(t, ok)

	w.Reset()
	_, ok = w.At(0)
	require.False(t, ok)
	require.Equal(t, 0, w.Len())
}

func TestToken_RoundTrip(t *testing.T) {
	for n := 0; n <= WordSize; n++ {
		residual := uint32(0xA1B2C3D4) & (uint32(1)<<(8*n) - 1)
		if n == WordSize {
			residual = 0xA1B2C3D4
		}

		buf := AppendToken(nil, 17, residual, n)
		require.Len(t, buf, 1+n)
		require.Equal(t, 1+n, TokenLen(buf[0]))
		require.True(t, ValidHeader(buf[0]))
		require.Equal(t, n == WordSize, IsLiteral(buf[0]))

		gotLen, gotSlot := UnpackHeader(buf[0])
		require.Equal(t, n, gotLen)
		require.Equal(t, 17, gotSlot)
		require.Equal(t, residual, Residual(buf[1:], n))

		fixed := make([]byte, MaxTokenLen)
		written := PutToken(fixed, 17, residual, n)
		require.Equal(t, buf, fixed[:written])
	}
}

func TestValidHeader_RejectsLongResidual(t *testing.T) {
	require.False(t, ValidHeader(5<<5))
	require.False(t, ValidHeader(0xFF))
}
