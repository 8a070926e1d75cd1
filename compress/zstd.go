package compress

// ZstdCompressor provides Zstandard compression for archived blocks.
//
// It trades encode speed for ratio and suits blocks that are written once and read
// rarely. Two implementations exist: the pure Go klauspost/compress encoder by
// default, and valyala/gozstd when built with cgo and the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
