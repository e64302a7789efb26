// Package compress provides the compression codecs behind session
// checkpoints.
//
// A long annotation session accumulates pending ROI records that are only
// flushed into the container on the first image write. Checkpoints protect
// that pending state across process restarts; this package compresses the
// serialized snapshots.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// NoOp (format.CompressionNone): passes data through untouched. Use for
// tiny sessions or debugging.
//
// LZ4 (format.CompressionLZ4): fastest restore, moderate ratio. Good
// default for frequent checkpoints.
//
// S2 (format.CompressionS2): Snappy-compatible, balanced speed and ratio.
//
// Zstd (format.CompressionZstd): best ratio, moderate speed. Best for
// snapshots that are kept or transferred. Backed by libzstd when cgo is
// enabled and by a pure Go implementation otherwise; both emit standard
// Zstd frames.
//
// # Usage
//
// Codecs are selected by format.CompressionType, usually forwarded from a
// snapshot header:
//
//	codec, err := compress.GetCodec(format.CompressionLZ4)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(snapshot)
//
// All built-in codecs are stateless values and safe for concurrent use;
// internal buffer pools are shared process-wide.
package compress
