package tiffmeta

import (
	"fmt"
	"image"
	"io"

	"golang.org/x/image/tiff"

	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/internal/pool"
	"github.com/arloliu/ijroi/roi"
	"github.com/arloliu/ijroi/section"
)

// Writer assembles a multi-frame TIFF container with ROI overlay metadata.
//
// It decorates the standard TIFF encoder: frames passed to WriteImage are
// encoded one by one and stitched into a single IFD chain, and the ROI
// records queued with AddROI ride along in the metadata tags of the first
// frame written while records are pending. Close emits the finished
// container to the underlying writer.
//
// The metadata block is attached exactly once per writer. Records queued
// after the attachment accumulate but are never emitted, mirroring the
// one-shot semantics of the embedding pipelines this format comes from.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w   io.Writer
	cfg *writerConfig

	buf       []byte
	engine    endian.EndianEngine
	frames    int
	nextPatch int // offset of the IFD pointer the next frame hooks into

	pending      [][]byte
	roisPerFrame map[int]int
	emitted      bool
	block        []byte
	byteCounts   []uint32

	closed bool
}

// NewWriter creates a Writer emitting to w on Close.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	cfg, err := newWriterConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Writer{
		w:            w,
		cfg:          cfg,
		roisPerFrame: make(map[int]int),
	}, nil
}

// AddROI queues one outline for the metadata block, placed on the
// zero-based hyperstack position (c, z, t).
//
// An empty name synthesizes one from the frame and a per-frame sequential
// index, so unnamed outlines added to the same frame become "F01-C1",
// "F01-C2" and so on. Explicitly named outlines do not advance the
// per-frame counter.
func (w *Writer) AddROI(points []image.Point, name string, c, z, t int) error {
	opts := make([]roi.EncodeOption, 0, 3)
	opts = append(opts, roi.WithPosition(c, z, t))
	if name == "" {
		w.roisPerFrame[t]++
		opts = append(opts, roi.WithIndex(w.roisPerFrame[t]))
	} else {
		opts = append(opts, roi.WithName(name))
	}
	if w.cfg.random != nil {
		opts = append(opts, roi.WithRandom(w.cfg.random))
	}

	record, err := roi.Encode(points, opts...)
	if err != nil {
		return fmt.Errorf("add roi: %w", err)
	}
	w.pending = append(w.pending, record)

	return nil
}

// AddEncodedROI queues an already encoded record, for callers that need
// the full record encoding options. The record is validated by decoding
// it; the per-frame counter is not advanced.
func (w *Writer) AddEncodedROI(record []byte) error {
	if _, err := roi.Decode(record); err != nil {
		return fmt.Errorf("add encoded roi: %w", err)
	}

	own := make([]byte, len(record))
	copy(own, record)
	w.pending = append(w.pending, own)

	return nil
}

// WriteImage encodes one frame and appends it to the container.
//
// The first frame written while ROI records are pending also carries the
// metadata block and its byte-count table; the description tag goes on
// frame one unconditionally.
func (w *Writer) WriteImage(img image.Image) error {
	if w.closed {
		return fmt.Errorf("write image: writer is closed")
	}

	frame := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(frame)

	if err := tiff.Encode(frame, img, w.cfg.tiffOpts); err != nil {
		return fmt.Errorf("encode frame %d: %w", w.frames, err)
	}

	if err := w.appendFrame(frame.Bytes()); err != nil {
		return fmt.Errorf("frame %d: %w", w.frames, err)
	}
	w.frames++

	return nil
}

// appendFrame splices one encoded single-frame TIFF into the container:
// the frame bytes are copied verbatim, its IFD is rebuilt at the end of
// the container with rebased pointers plus any extra tags, and the chain
// pointer of the previous frame is patched to reach it.
func (w *Writer) appendFrame(frame []byte) error {
	engine, ifdOff, err := readContainerHeader(frame)
	if err != nil {
		return err
	}
	if w.frames == 0 {
		w.engine = engine
	} else if engine.String() != w.engine.String() {
		return fmt.Errorf("frame byte order %s differs from container byte order %s", engine, w.engine)
	}

	w.buf = alignEven(w.buf)
	delta := uint32(len(w.buf))
	w.buf = append(w.buf, frame...)

	entries, next, err := parseIFD(w.buf, int(delta)+ifdOff, w.engine)
	if err != nil {
		return err
	}
	for i := range entries {
		if err := rebaseEntry(w.buf, &entries[i], delta, w.engine); err != nil {
			return err
		}
	}

	if w.frames == 0 {
		entries = w.addDescriptionTag(entries)
	}
	if !w.emitted && len(w.pending) > 0 {
		entries = w.addMetadataTags(entries)
		w.emitted = true
	}

	var ifdPos int
	w.buf, ifdPos = appendIFD(w.buf, entries, next, w.engine)

	if w.frames == 0 {
		w.engine.PutUint32(w.buf[4:8], uint32(ifdPos))
	} else {
		w.engine.PutUint32(w.buf[w.nextPatch:w.nextPatch+4], uint32(ifdPos))
	}
	w.nextPatch = ifdPos + 2 + len(entries)*ifdEntryLen

	return nil
}

func (w *Writer) addDescriptionTag(entries []ifdEntry) []ifdEntry {
	desc := append([]byte(w.cfg.description), 0)

	e := ifdEntry{tag: section.TagImageDescription, typ: dtASCII, count: uint32(len(desc))}
	w.buf, e.value = appendEntryData(w.buf, desc, w.engine)

	return insertEntry(entries, e)
}

func (w *Writer) addMetadataTags(entries []ifdEntry) []ifdEntry {
	w.block, w.byteCounts = roi.AssembleBlockWithEngine(w.pending, w.engine)

	countBytes := make([]byte, 0, len(w.byteCounts)*4)
	for _, c := range w.byteCounts {
		countBytes = w.engine.AppendUint32(countBytes, c)
	}

	ce := ifdEntry{tag: section.TagMetaByteCounts, typ: dtLong, count: uint32(len(w.byteCounts))}
	w.buf, ce.value = appendEntryData(w.buf, countBytes, w.engine)
	entries = insertEntry(entries, ce)

	be := ifdEntry{tag: section.TagMeta, typ: dtByte, count: uint32(len(w.block))}
	w.buf, be.value = appendEntryData(w.buf, w.block, w.engine)

	return insertEntry(entries, be)
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int {
	return w.frames
}

// PendingROIs returns the number of queued records. The count keeps
// growing after the metadata block is attached, but those late records
// are never emitted.
func (w *Writer) PendingROIs() int {
	return len(w.pending)
}

// MetadataEmitted reports whether the metadata block has been attached to
// a frame.
func (w *Writer) MetadataEmitted() bool {
	return w.emitted
}

// Close emits the assembled container to the underlying writer. Closing
// twice is a no-op; closing with no frames written is an error since an
// empty container is not a valid file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.frames == 0 {
		return fmt.Errorf("close: no frames written")
	}
	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("write container: %w", err)
	}

	return nil
}
