// Package endian provides byte order utilities for mapping typed samples to words.
//
// The pattern codec treats a word as four opaque bytes and always reads them
// little-endian. Typed samples (int32, float32) still need a byte order to become
// words; the block package records that choice in its header and uses an
// EndianEngine to apply it.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendFloat32(engine, buf, 21.5)
//	v := endian.Float32(engine, buf[0:4])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary into a
// single interface.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine lays out the least significant byte first.
func IsLittleEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x02
}

// WordFromBytes returns the 4 bytes of b[0:4] as the word the codec sees.
//
// The codec reads words little-endian whatever engine produced the bytes.
func WordFromBytes(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// PutWord stores word into b[0:4] in codec byte order.
func PutWord(b []byte, word uint32) {
	binary.LittleEndian.PutUint32(b, word)
}

// AppendWord appends word in codec byte order.
func AppendWord(b []byte, word uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, word)
}

// WordFromUint32 converts a sample laid out with engine into a codec word.
//
// With a little-endian engine this is the identity. With a big-endian engine the
// bytes are swapped, so the stored bytes match what a big-endian writer produces.
func WordFromUint32(engine EndianEngine, v uint32) uint32 {
	var b [4]byte
	engine.PutUint32(b[:], v)

	return WordFromBytes(b[:])
}

// Uint32FromWord is the inverse of WordFromUint32.
func Uint32FromWord(engine EndianEngine, word uint32) uint32 {
	var b [4]byte
	PutWord(b[:], word)

	return engine.Uint32(b[:])
}

// WordFromFloat32 converts a float32 sample into a codec word.
func WordFromFloat32(engine EndianEngine, v float32) uint32 {
	return WordFromUint32(engine, math.Float32bits(v))
}

// Float32FromWord converts a codec word back into a float32 sample.
func Float32FromWord(engine EndianEngine, word uint32) float32 {
	return math.Float32frombits(Uint32FromWord(engine, word))
}

// WordFromInt32 converts an int32 sample into a codec word.
func WordFromInt32(engine EndianEngine, v int32) uint32 {
	return WordFromUint32(engine, uint32(v))
}

// Int32FromWord converts a codec word back into an int32 sample.
func Int32FromWord(engine EndianEngine, word uint32) int32 {
	return int32(Uint32FromWord(engine, word))
}

// AppendFloat32 appends a float32 sample using engine.
func AppendFloat32(engine EndianEngine, b []byte, v float32) []byte {
	return engine.AppendUint32(b, math.Float32bits(v))
}

// Float32 reads a float32 sample from b[0:4] using engine.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}
