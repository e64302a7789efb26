package tiffmeta

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"

	"golang.org/x/image/tiff"

	"github.com/arloliu/ijroi/encoding"
	"github.com/arloliu/ijroi/errs"
	"github.com/arloliu/ijroi/roi"
	"github.com/arloliu/ijroi/section"
)

// Metadata is everything this package understands about a container's
// annotation content.
//
// The raw forms are always kept next to the decoded ones: BlockData and
// OverlayData let callers pass records through untouched, while Overlays
// carries the decoded, indexed set. Info, Labels, Ranges and LUTs surface
// the auxiliary block segments written by other producers of the format.
type Metadata struct {
	// Description is the first frame's description text, with the
	// "ImageJ=" preamble identifying the flavor.
	Description string

	// ByteCounts and BlockData are the raw metadata tags: the segment
	// byte-count table and the block it partitions. Both are nil when the
	// container carries no metadata block.
	ByteCounts []uint32
	BlockData  []byte

	// OverlayData holds the raw overlay record segments; Overlays is the
	// decoded, indexed form.
	OverlayData [][]byte
	Overlays    *roi.OverlaySet

	// Auxiliary block segments.
	Info   string
	Labels []string
	Ranges []float64
	LUTs   [][]byte
}

// HasOverlays reports whether the container carried at least one overlay
// record, decoded or not.
func (m *Metadata) HasOverlays() bool {
	return len(m.OverlayData) > 0
}

// ReadMetadata scans a container for the annotation metadata tags and
// decodes what it finds.
//
// A container without the metadata tags yields an empty Metadata and no
// error; plain TIFF files are legal input. When the block is present,
// overlay records are decoded best-effort: the returned error joins the
// per-record decode failures while Metadata still carries every record
// that decoded, plus all raw payloads. Callers that only forward raw
// records may therefore ignore the error if HasOverlays reports true.
func ReadMetadata(r io.ReaderAt) (*Metadata, error) {
	header := make([]byte, headerLen)
	if _, err := r.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("%w: reading header: %s", errs.ErrNotTIFF, err)
	}

	engine, err := detectByteOrder(header)
	if err != nil {
		return nil, err
	}

	md := &Metadata{}
	var countsEntry, blockEntry *ifdEntry

	ifdOff := int64(engine.Uint32(header[4:8]))
	seen := make(map[int64]bool)
	for ifdOff != 0 && !seen[ifdOff] {
		seen[ifdOff] = true

		entries, next, err := readIFD(r, ifdOff, engine)
		if err != nil {
			return nil, err
		}

		for i := range entries {
			e := &entries[i]
			switch e.tag {
			case section.TagImageDescription:
				if md.Description != "" {
					continue
				}
				data, err := entryData(r, e, engine)
				if err != nil {
					return nil, err
				}
				md.Description = string(bytes.TrimRight(data, "\x00"))
			case section.TagMetaByteCounts:
				if countsEntry == nil {
					cp := *e
					countsEntry = &cp
				}
			case section.TagMeta:
				if blockEntry == nil {
					cp := *e
					blockEntry = &cp
				}
			}
		}

		if countsEntry != nil && blockEntry != nil {
			break
		}
		ifdOff = int64(next)
	}

	if blockEntry == nil {
		return md, nil
	}
	if countsEntry == nil {
		return md, fmt.Errorf("%w: container carries a metadata block without its byte counts", errs.ErrMissingByteCounts)
	}

	md.ByteCounts, err = entryUints(r, countsEntry, engine)
	if err != nil {
		return md, err
	}
	md.BlockData, err = entryData(r, blockEntry, engine)
	if err != nil {
		return md, err
	}

	info, err := roi.SplitBlockWithEngine(md.BlockData, md.ByteCounts, engine)
	if err != nil {
		return md, fmt.Errorf("metadata block: %w", err)
	}

	if segs := info.Segments[section.KindInfo]; len(segs) > 0 {
		md.Info = encoding.DecodeUTF16(segs[0], engine)
	}
	for _, seg := range info.Segments[section.KindLabels] {
		md.Labels = append(md.Labels, encoding.DecodeUTF16(seg, engine))
	}
	for _, seg := range info.Segments[section.KindRanges] {
		for off := 0; off+8 <= len(seg); off += 8 {
			md.Ranges = append(md.Ranges, math.Float64frombits(engine.Uint64(seg[off:off+8])))
		}
	}
	md.LUTs = info.Segments[section.KindLUTs]

	md.OverlayData = info.Overlays()
	set, decErr := roi.DecodeOverlaySet(md.OverlayData)
	md.Overlays = set

	return md, decErr
}

// Decode reads a whole container from r and returns its first frame along
// with the decoded metadata. Metadata errors do not discard the pixel
// data; see ReadMetadata for the error contract.
func Decode(r io.Reader) (image.Image, *Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read container: %w", err)
	}

	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode pixels: %w", err)
	}

	md, mdErr := ReadMetadata(bytes.NewReader(data))

	return img, md, mdErr
}

// DecodeFrames decodes every frame of a multi-page container along with
// the metadata. The standard TIFF decoder only reads a file's first
// frame, so each later frame is served through a stand-in header pointing
// at its IFD; all offsets in the format are absolute, which makes the
// body bytes position-independent.
func DecodeFrames(r io.Reader) ([]image.Image, *Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read container: %w", err)
	}

	engine, firstOff, err := readContainerHeader(data)
	if err != nil {
		return nil, nil, err
	}

	br := bytes.NewReader(data)

	var frames []image.Image
	ifdOff := int64(firstOff)
	seen := make(map[int64]bool)
	for ifdOff != 0 && !seen[ifdOff] {
		seen[ifdOff] = true

		var img image.Image
		if ifdOff == int64(firstOff) {
			img, err = tiff.Decode(bytes.NewReader(data))
		} else {
			header := make([]byte, headerLen)
			copy(header, data[:4])
			engine.PutUint32(header[4:8], uint32(ifdOff))
			img, err = tiff.Decode(io.MultiReader(bytes.NewReader(header), bytes.NewReader(data[headerLen:])))
		}
		if err != nil {
			return frames, nil, fmt.Errorf("decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, img)

		_, next, err := readIFD(br, ifdOff, engine)
		if err != nil {
			return frames, nil, err
		}
		ifdOff = int64(next)
	}

	md, mdErr := ReadMetadata(br)

	return frames, md, mdErr
}
