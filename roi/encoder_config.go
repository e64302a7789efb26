package roi

import (
	"math/rand/v2"

	"github.com/arloliu/ijroi/internal/options"
)

// encodeConfig collects the optional inputs of Encode.
type encodeConfig struct {
	name     string
	hasName  bool
	c        int
	z        int
	t        int
	index    int
	hasIndex bool
	random   func() uint32
}

func newEncodeConfig(opts ...EncodeOption) (*encodeConfig, error) {
	cfg := &encodeConfig{random: rand.Uint32}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EncodeOption represents a functional option for configuring Encode.
// This is a type alias for the generic Option interface specialized for
// the encoder configuration.
type EncodeOption = options.Option[*encodeConfig]

// WithName sets an explicit record name. When a name is given, Encode
// stores it verbatim and performs no name synthesis, so WithIndex and the
// random source have no effect.
func WithName(name string) EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.name = name
		cfg.hasName = true
	})
}

// WithPosition sets the zero-based hyperstack position of the outline.
//
// Only the frame index t is recorded: it becomes the one-based position
// field of the primary header and the frame component of synthesized
// names. The channel, slice, and frame fields of the secondary header are
// always written as zero, leaving position as the sole placement key. The
// channel c and slice z are accepted for callers that track full
// positions.
func WithPosition(c, z, t int) EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.c = c
		cfg.z = z
		cfg.t = t
	})
}

// WithIndex sets the per-frame object index used for name synthesis.
// Records encoded with an index and no explicit name are named
// "F<frame>-C<index>", which keeps an object's name stable across frames
// and makes it usable as a track key.
func WithIndex(index int) EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.index = index
		cfg.hasIndex = true
	})
}

// WithRandom sets the random source used to synthesize names for records
// encoded without a name and without an index. The default draws from
// math/rand/v2; tests inject a fixed source to make synthesized names
// reproducible. A nil source keeps the default.
func WithRandom(fn func() uint32) EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		if fn != nil {
			cfg.random = fn
		}
	})
}
