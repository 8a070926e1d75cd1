package window

// Token header layout (one byte):
//
//	bits 5-7  residual length r, 0..4
//	bits 0-4  window slot
//
// A token is the header followed by r residual bytes, least significant first.
// The decoded word is window[slot] XOR residual. r == 0 is an exact
// back-reference, r == WordSize carries the full word difference and acts as
// the literal token.
const (
	slotMask       = 0x1F
	residualShift  = 5
	MaxTokenLen    = 1 + WordSize
	literalResidue = WordSize
)

// PackHeader builds a token header byte.
func PackHeader(residualLen, slot int) byte {
	return byte(residualLen<<residualShift | slot&slotMask)
}

// UnpackHeader splits a token header byte into residual length and slot.
func UnpackHeader(h byte) (residualLen, slot int) {
	return int(h >> residualShift), int(h & slotMask)
}

// ValidHeader reports whether the residual length field of h is in range.
func ValidHeader(h byte) bool {
	return int(h>>residualShift) <= WordSize
}

// IsLiteral reports whether h carries a full word residual.
func IsLiteral(h byte) bool {
	return int(h>>residualShift) == literalResidue
}

// TokenLen returns the total encoded size of the token that starts with h.
func TokenLen(h byte) int {
	return 1 + int(h>>residualShift)
}

// AppendToken appends a token header and its residual bytes to dst.
func AppendToken(dst []byte, slot int, residual uint32, residualLen int) []byte {
	dst = append(dst, PackHeader(residualLen, slot))
	for i := 0; i < residualLen; i++ {
		dst = append(dst, byte(residual>>(8*i)))
	}

	return dst
}

// PutToken writes a token into dst and returns the number of bytes written.
// dst must have room for 1+residualLen bytes.
func PutToken(dst []byte, slot int, residual uint32, residualLen int) int {
	dst[0] = PackHeader(residualLen, slot)
	for i := 0; i < residualLen; i++ {
		dst[1+i] = byte(residual >> (8 * i))
	}

	return 1 + residualLen
}

// Residual reads an n byte little-endian residual from src.
func Residual(src []byte, n int) uint32 {
	var r uint32
	for i := 0; i < n; i++ {
		r |= uint32(src[i]) << (8 * i)
	}

	return r
}
