package section

import (
	"math"

	"github.com/arloliu/wordpack/format"
)

const (
	// Bit masks of the options field
	ReservedLowMask  = 0x0001 // Reserved bit (bit 0), must be 0
	EndiannessMask   = 0x0002 // Endianness bit (bit 1), 0 little, 1 big
	AddressingMask   = 0x0004 // Addressing bit (bit 2), 0 circular, 1 linear
	ReservedBitsMask = 0x0008 // Reserved bit (bit 3), must be 0
	MagicNumberMask  = 0xFFF0 // Magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicBlockV1Opt = 0xEE10 // MagicBlockV1Opt identifies a version 1 channel block.
	MagicSetV1Opt   = 0xEF10 // MagicSetV1Opt identifies a version 1 block set.

	EncodingRaw     = uint8(format.TypeRaw)     // EncodingRaw stores words verbatim.
	EncodingPattern = uint8(format.TypePattern) // EncodingPattern stores words as a pattern stream.

	CompressionNone = uint8(format.CompressionNone) // CompressionNone applies no second stage.
	CompressionZstd = uint8(format.CompressionZstd) // CompressionZstd applies Zstandard.
	CompressionS2   = uint8(format.CompressionS2)   // CompressionS2 applies S2.
	CompressionLZ4  = uint8(format.CompressionLZ4)  // CompressionLZ4 applies LZ4.
)

// offset and section sizes
const (
	BlockHeaderSize = 40             // fixed block header size in bytes
	SetHeaderSize   = 16             // fixed block set header size in bytes
	IndexEntrySize  = 16             // fixed block set index entry size in bytes
	MaxWordCount    = math.MaxUint32 // maximum words in one block
	MaxPayloadSize  = math.MaxUint32 // maximum payload bytes in one block or set
	MaxChannels     = math.MaxUint16 // maximum channels in one block set
)
