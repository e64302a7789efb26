package roi

import (
	"fmt"
	"image"
	"math"

	"github.com/arloliu/ijroi/encoding"
	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
	"github.com/arloliu/ijroi/internal/pool"
	"github.com/arloliu/ijroi/layout"
	"github.com/arloliu/ijroi/section"
)

// Encode serializes one outline into a freehand ROI record.
//
// The record is laid out as primary header, coordinate planes, secondary
// header, then the UTF-16 name. Coordinates are translated so the
// bounding-box origin becomes (0, 0), with the origin itself stored in the
// header's left and top fields. The position field is the one-based frame
// (t+1); records placed on frame t=0 get position 1.
//
// Records without an explicit name get one synthesized from the frame and
// either the per-frame index ("F01-C1") or a random 32-bit hex value
// ("F01-9ae41f2c"), so every record can serve as a track key.
//
// Parameters:
//   - points: Outline vertices in image space, at least one
//   - opts: Optional name, position, index, and random source
//
// Returns:
//   - []byte: Complete record, ready for block assembly or a .roi file
//   - error: ErrNoPoints, ErrTooManyPoints, or ErrCoordinateOverflow
func Encode(points []image.Point, opts ...EncodeOption) ([]byte, error) {
	cfg, err := newEncodeConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return nil, errs.ErrNoPoints
	}
	if len(points) > math.MaxInt16 {
		return nil, fmt.Errorf("%w: %d points exceed the per-record limit of %d", errs.ErrTooManyPoints, len(points), math.MaxInt16)
	}

	name := cfg.name
	if !cfg.hasName {
		if cfg.hasIndex {
			name = fmt.Sprintf("F%02d-C%d", cfg.t+1, cfg.index)
		} else {
			name = fmt.Sprintf("F%02d-%x", cfg.t+1, cfg.random())
		}
	}

	left, top := points[0].X, points[0].Y
	for _, p := range points[1:] {
		if p.X < left {
			left = p.X
		}
		if p.Y < top {
			top = p.Y
		}
	}
	if left < math.MinInt16 || left > math.MaxInt16 || top < math.MinInt16 || top > math.MaxInt16 {
		return nil, fmt.Errorf("%w: bounding-box origin (%d, %d) outside int16 range", errs.ErrCoordinateOverflow, left, top)
	}

	// The translated planes only live until AppendCoordinatePlanes copies
	// them into the record, so they come from the pool.
	xs, returnXs := pool.GetIntSlice(len(points))
	defer returnXs()
	ys, returnYs := pool.GetIntSlice(len(points))
	defer returnYs()
	for i, p := range points {
		xs[i] = p.X - left
		ys[i] = p.Y - top
	}

	n := len(points)
	header2Offset := section.RoiHeaderSize + section.CoordinateSize*n
	nameOffset := header2Offset + section.RoiHeader2Size
	nameUnits := encoding.UTF16Length(name)

	header := layout.NewRecord(section.RoiHeaderLayout())
	if err := header.SetBytesField("_iout", []byte(section.RoiMagic)); err != nil {
		return nil, err
	}
	header.MustSetInt("version", section.RoiVersion)
	header.MustSetInt("roi_type", int64(TypeFreehand))
	header.MustSetInt("top", int64(top))
	header.MustSetInt("left", int64(left))
	header.MustSetInt("n_coordinates", int64(n))
	header.MustSetInt("options", section.RoiEncodeOptions)
	header.MustSetInt("header2_offset", int64(header2Offset))
	if err := header.SetInt("position", int64(cfg.t)+1); err != nil {
		return nil, fmt.Errorf("set position: %w", err)
	}

	header2 := layout.NewRecord(section.RoiHeader2Layout())
	header2.MustSetInt("name_offset", int64(nameOffset))
	if err := header2.SetInt("name_length", int64(nameUnits)); err != nil {
		return nil, fmt.Errorf("set name_length: %w", err)
	}

	engine := endian.GetBigEndianEngine()

	out := make([]byte, 0, nameOffset+2*nameUnits)
	out = header.AppendTo(out)
	out, err = encoding.AppendCoordinatePlanes(out, xs, ys, engine)
	if err != nil {
		return nil, err
	}
	out = header2.AppendTo(out)
	out, _ = encoding.AppendUTF16(out, name, engine)

	return out, nil
}
