package section

import (
	"github.com/arloliu/wordpack/endian"
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
)

// BlockFlag represents the packed field for flags in the block header.
type BlockFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved, must be 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2 is addressing flag, 0 means circular, 1 means linear.
	// Bit 3 is reserved, must be 0.
	// Bit 4-15 are magic number to identify the format:
	//   - 0xEE10: channel block v1
	//   - 0xEF10: block set v1
	Options uint16

	// EncodingType is the first-stage encoding of the block payload.
	EncodingType uint8
	// CompressionType is the second-stage compression of the block payload.
	CompressionType uint8
}

var (
	validEncodings = map[uint8]struct{}{
		EncodingRaw:     {},
		EncodingPattern: {},
	}

	validCompressions = map[uint8]struct{}{
		CompressionNone: {},
		CompressionZstd: {},
		CompressionS2:   {},
		CompressionLZ4:  {},
	}
)

// NewBlockFlag creates a new BlockFlag with default settings: little-endian,
// pattern encoding, no second stage and linear addressing.
func NewBlockFlag() BlockFlag {
	flag := BlockFlag{
		Options:         MagicBlockV1Opt,
		EncodingType:    EncodingPattern,
		CompressionType: CompressionNone,
	}
	flag.WithLittleEndian()
	flag.SetAddressing(format.AddressingLinear)

	return flag
}

// IsLittleEndian returns whether typed samples are little-endian.
func (f BlockFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether typed samples are big-endian.
func (f BlockFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *BlockFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *BlockFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// Addressing returns the window addressing mode of the pattern stream.
func (f BlockFlag) Addressing() format.AddressingMode {
	if f.Options&AddressingMask != 0 {
		return format.AddressingLinear
	}

	return format.AddressingCircular
}

// SetAddressing records the window addressing mode.
func (f *BlockFlag) SetAddressing(mode format.AddressingMode) {
	if mode == format.AddressingLinear {
		f.Options |= AddressingMask
	} else {
		f.Options &^= AddressingMask
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f BlockFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Encoding returns the payload encoding type.
func (f BlockFlag) Encoding() format.EncodingType {
	return format.EncodingType(f.EncodingType)
}

// SetEncoding sets the payload encoding type.
func (f *BlockFlag) SetEncoding(enc format.EncodingType) {
	f.EncodingType = uint8(enc)
}

// Compression returns the payload compression type.
func (f BlockFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression type.
func (f *BlockFlag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// IsValidMagicNumber checks if the magic number identifies a block.
func (f BlockFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicBlockV1Opt
}

// IsValidEncoding checks if the encoding type is known.
func (f BlockFlag) IsValidEncoding() bool {
	_, ok := validEncodings[f.EncodingType]
	return ok
}

// IsValidCompression checks if the compression type is known.
func (f BlockFlag) IsValidCompression() bool {
	_, ok := validCompressions[f.CompressionType]
	return ok
}

// Validate checks if the flag contains valid values.
func (f BlockFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidMagicNumber, "got %#04x", f.GetMagicNumber())
	}

	if f.Options&(ReservedLowMask|ReservedBitsMask) != 0 {
		return errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidHeaderFlags, "reserved options bits set: %#04x", f.Options)
	}

	if !f.IsValidEncoding() {
		return errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidHeaderFlags, "encoding %d", f.EncodingType)
	}

	if !f.IsValidCompression() {
		return errs.Wrapf(errs.ErrCorruptStream, errs.ErrInvalidHeaderFlags, "compression %d", f.CompressionType)
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f BlockFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
