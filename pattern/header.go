package pattern

import (
	"github.com/arloliu/wordpack/endian"
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
)

const (
	headerLen          = 1
	headerStrengthMask = 0x1F
	headerLinearFlag   = 0x20
	headerReservedFlag = 0x40
	headerStoredFlag   = 0x80
)

// Words are always read and written little-endian, so the most significant byte of a
// word is the last one in memory and residuals are its leading bytes.
var le = endian.GetLittleEndianEngine()

type streamHeader struct {
	strength   uint8
	addressing format.AddressingMode
	stored     bool
}

func (h streamHeader) byte() byte {
	b := h.strength & headerStrengthMask
	if h.addressing == format.AddressingLinear {
		b |= headerLinearFlag
	}
	if h.stored {
		b |= headerStoredFlag
	}

	return b
}

func parseStreamHeader(b byte) (streamHeader, error) {
	if b&headerReservedFlag != 0 {
		return streamHeader{}, corruptf("reserved header bit set in %#02x", b)
	}

	h := streamHeader{
		strength:   b & headerStrengthMask,
		addressing: format.AddressingCircular,
		stored:     b&headerStoredFlag != 0,
	}
	if b&headerLinearFlag != 0 {
		h.addressing = format.AddressingLinear
	}

	return h, nil
}

func corruptf(msg string, args ...any) error {
	return errs.Detailf(errs.ErrCorruptStream, msg, args...)
}
