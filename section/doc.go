// Package section defines the binary layout of wordpack blocks and block sets.
//
// # Block Structure
//
// A block stores the words of one channel:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ BlockHeader (40 bytes, fixed)                           │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (PayloadSize bytes)                             │
//	│  - raw words, or a pattern stream                       │
//	│  - optionally passed through a second-stage compressor  │
//	└─────────────────────────────────────────────────────────┘
//
// BlockHeader:
//
//	Bytes  | Field        | Type   | Description
//	-------|--------------|--------|---------------------------------------
//	0-1    | Options      | uint16 | magic (4-15), addressing, endianness
//	2      | EncodingType | uint8  | format.TypeRaw or format.TypePattern
//	3      | Compression  | uint8  | second-stage format.CompressionType
//	4-11   | ChannelID    | uint64 | xxHash64 of the channel name
//	12-19  | StartTime    | int64  | unix microseconds
//	20-23  | WordCount    | uint32 | number of words
//	24-31  | Checksum     | uint64 | xxHash64 of the raw word bytes
//	32-35  | EncodedSize  | uint32 | payload size before the second stage
//	36-39  | PayloadSize  | uint32 | bytes following the header
//
// Options is always little-endian. The endianness bit governs every other integer
// in the header and the byte order of typed samples. The payload words themselves
// are always little-endian.
//
// # Block Set Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ SetHeader (16 bytes)                                    │
//	├─────────────────────────────────────────────────────────┤
//	│ Index (ChannelCount × 16 bytes)                         │
//	│  - ChannelID, Offset, Length                            │
//	├─────────────────────────────────────────────────────────┤
//	│ Blocks (PayloadSize bytes, concatenated)                │
//	└─────────────────────────────────────────────────────────┘
//
// Index entries are sorted by ChannelID so lookups can binary search.
package section
