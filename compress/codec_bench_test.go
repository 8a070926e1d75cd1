package compress

import (
	"fmt"
	"testing"
)

func BenchmarkCodecs_Compress(b *testing.B) {
	for _, ct := range allCompressionTypes() {
		for _, size := range []int{1024, 16 * 1024} {
			data := telemetryPayload(size, 42)
			codec, err := GetCodec(ct)
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/%dB", ct, size), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ReportAllocs()

				for b.Loop() {
					_, _ = codec.Compress(data)
				}
			})
		}
	}
}

func BenchmarkCodecs_Decompress(b *testing.B) {
	for _, ct := range allCompressionTypes() {
		data := telemetryPayload(16*1024, 42)
		codec, err := GetCodec(ct)
		if err != nil {
			b.Fatal(err)
		}
		packed, err := codec.Compress(data)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()

			for b.Loop() {
				_, _ = codec.Decompress(packed)
			}
		})
	}
}

func BenchmarkCodecs_Parallel(b *testing.B) {
	data := telemetryPayload(16*1024, 7)
	for _, ct := range allCompressionTypes() {
		codec, err := GetCodec(ct)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					packed, _ := codec.Compress(data)
					_, _ = codec.Decompress(packed)
				}
			})
		})
	}
}
