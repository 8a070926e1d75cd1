package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given channel name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Checksum accumulates an xxHash64 over the raw bytes of words as they are appended.
//
// The zero value is not usable; create checksums with NewChecksum.
type Checksum struct {
	digest  *xxhash.Digest
	scratch [4]byte
}

// NewChecksum creates an empty running checksum.
func NewChecksum() *Checksum {
	return &Checksum{digest: xxhash.New()}
}

// AddWord feeds the little-endian bytes of word into the checksum.
func (c *Checksum) AddWord(word uint32) {
	c.scratch[0] = byte(word)
	c.scratch[1] = byte(word >> 8)
	c.scratch[2] = byte(word >> 16)
	c.scratch[3] = byte(word >> 24)
	_, _ = c.digest.Write(c.scratch[:])
}

// AddBytes feeds raw word bytes into the checksum.
func (c *Checksum) AddBytes(b []byte) {
	_, _ = c.digest.Write(b)
}

// Sum64 returns the checksum of everything added so far.
func (c *Checksum) Sum64() uint64 {
	return c.digest.Sum64()
}

// Reset clears the checksum.
func (c *Checksum) Reset() {
	c.digest.Reset()
}
