package tiffmeta

import (
	"fmt"

	"golang.org/x/image/tiff"

	"github.com/arloliu/ijroi/errs"
	"github.com/arloliu/ijroi/format"
	"github.com/arloliu/ijroi/internal/options"
)

// DefaultDescription is the description stamped on the first frame. The
// "ImageJ=" prefix is what makes readers treat the container as
// ImageJ-flavored and look for the metadata tags.
const DefaultDescription = "ImageJ=1.11a\n"

// writerConfig collects the optional inputs of NewWriter.
type writerConfig struct {
	tiffOpts    *tiff.Options
	description string
	random      func() uint32
	checkpoint  format.CompressionType
}

func newWriterConfig(opts ...WriterOption) (*writerConfig, error) {
	cfg := &writerConfig{
		description: DefaultDescription,
		checkpoint:  format.CompressionZstd,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WriterOption represents a functional option for configuring a Writer.
type WriterOption = options.Option[*writerConfig]

// WithTIFFOptions sets the pixel encoding options of the underlying TIFF
// encoder, such as Deflate compression. The default is the encoder's
// default, which writes uncompressed strips.
func WithTIFFOptions(o *tiff.Options) WriterOption {
	return options.NoError(func(cfg *writerConfig) {
		cfg.tiffOpts = o
	})
}

// WithDescription sets the description stored on the first frame. Keep the
// "ImageJ=" prefix when extending it; an empty string keeps the default.
func WithDescription(desc string) WriterOption {
	return options.NoError(func(cfg *writerConfig) {
		if desc != "" {
			cfg.description = desc
		}
	})
}

// WithRandom sets the random source forwarded to record encoding for
// synthesized names. A nil source keeps the default.
func WithRandom(fn func() uint32) WriterOption {
	return options.NoError(func(cfg *writerConfig) {
		cfg.random = fn
	})
}

// WithCheckpointCompression sets the compression applied to session
// snapshots produced by Checkpoint. Default is Zstd.
func WithCheckpointCompression(compression format.CompressionType) WriterOption {
	return options.New(func(cfg *writerConfig) error {
		if !compression.IsValid() {
			return fmt.Errorf("%w: snapshot compression %s", errs.ErrUnknownCompression, compression)
		}
		cfg.checkpoint = compression

		return nil
	})
}
