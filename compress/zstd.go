package compress

// ZstdCompressor provides Zstandard compression for session snapshots.
//
// Zstd trades some speed for the best ratio of the built-in codecs, which
// suits snapshots that are written once per checkpoint and kept around:
//   - Long-running annotation sessions checkpointed to disk
//   - Snapshots shipped over the network to a resuming process
//
// Two implementations back this type. When cgo is available the libzstd
// binding is used; otherwise a pure Go implementation with pooled encoder
// and decoder instances takes over. Both produce standard Zstd frames and
// can read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
