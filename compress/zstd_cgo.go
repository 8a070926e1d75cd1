//go:build cgo && gozstd

package compress

import (
	"github.com/arloliu/wordpack/errs"
	"github.com/valyala/gozstd"
)

const zstdLevel = 3

// Compress compresses the input data using the cgo zstd binding.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses zstd-compressed data using the cgo binding.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, errs.Detailf(errs.ErrCorruptStream, "zstd decompression failed: %v", err)
	}

	return out, nil
}
