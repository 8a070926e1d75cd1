package format

type (
	EncodingType    uint8
	CompressionType uint8
	AddressingMode  uint8
)

const (
	TypeRaw     EncodingType = 0x1 // TypeRaw stores words verbatim.
	TypePattern EncodingType = 0x2 // TypePattern stores words through the pattern codec.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	// AddressingCircular names history window entries by ring slot.
	AddressingCircular AddressingMode = 0x0
	// AddressingLinear names history window entries by position, oldest at index 0.
	AddressingLinear AddressingMode = 0x1
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypePattern:
		return "Pattern"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (m AddressingMode) String() string {
	switch m {
	case AddressingCircular:
		return "Circular"
	case AddressingLinear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is a known addressing mode.
func (m AddressingMode) Valid() bool {
	return m == AddressingCircular || m == AddressingLinear
}
