package tiffmeta

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/ijroi/compress"
	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
	"github.com/arloliu/ijroi/format"
)

// Snapshot envelope constants. The envelope is always big-endian; the
// compression byte selects the codec for the payload that follows it.
const (
	snapshotMagic   uint32 = 0x494A5353 // "IJSS"
	snapshotVersion byte   = 1

	snapshotEnvelopeSize = 8
)

var snapshotEngine = endian.GetBigEndianEngine()

// Checkpoint serializes the writer's annotation state into a compact
// snapshot: the pending ROI records, the per-frame name counters, and
// the one-shot emission state including the assembled block when the
// metadata tags were already attached.
//
// Snapshot layout:
//
//	magic (4B) | version (1B) | compression (1B) | reserved (2B)
//	compressed payload:
//	    emitted flag, byte-count table, block bytes,
//	    per-frame counters, pending records
//
// The payload codec is selected with WithCheckpointCompression. Frame
// pixel data is not part of the snapshot; a restored writer starts a
// fresh container.
func (w *Writer) Checkpoint() ([]byte, error) {
	size := 1 + 4 + 4*len(w.byteCounts) + 4 + len(w.block) + 4 + 8*len(w.roisPerFrame) + 4
	for _, rec := range w.pending {
		size += 4 + len(rec)
	}

	payload := make([]byte, 0, size)
	if w.emitted {
		payload = append(payload, 1)
	} else {
		payload = append(payload, 0)
	}

	payload = snapshotEngine.AppendUint32(payload, uint32(len(w.byteCounts)))
	for _, c := range w.byteCounts {
		payload = snapshotEngine.AppendUint32(payload, c)
	}
	payload = snapshotEngine.AppendUint32(payload, uint32(len(w.block)))
	payload = append(payload, w.block...)

	payload = snapshotEngine.AppendUint32(payload, uint32(len(w.roisPerFrame)))
	for _, frame := range slices.Sorted(maps.Keys(w.roisPerFrame)) {
		payload = snapshotEngine.AppendUint32(payload, uint32(frame))
		payload = snapshotEngine.AppendUint32(payload, uint32(w.roisPerFrame[frame]))
	}

	payload = snapshotEngine.AppendUint32(payload, uint32(len(w.pending)))
	for _, rec := range w.pending {
		payload = snapshotEngine.AppendUint32(payload, uint32(len(rec)))
		payload = append(payload, rec...)
	}

	codec, err := compress.GetCodec(w.cfg.checkpoint)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	out := make([]byte, 0, snapshotEnvelopeSize+len(compressed))
	out = snapshotEngine.AppendUint32(out, snapshotMagic)
	out = append(out, snapshotVersion, byte(w.cfg.checkpoint))
	out = snapshotEngine.AppendUint16(out, 0)
	out = append(out, compressed...)

	return out, nil
}

// Restore loads a snapshot produced by Checkpoint into the writer.
//
// The writer must be unused: no frames written, no records queued, no
// metadata emitted. The snapshot's own compression byte selects the
// codec, so the writer's configured checkpoint compression does not
// have to match the one the snapshot was written with.
func (w *Writer) Restore(snapshot []byte) error {
	if w.closed {
		return fmt.Errorf("restore: writer is closed")
	}
	if w.frames != 0 || len(w.pending) != 0 || w.emitted || len(w.roisPerFrame) != 0 {
		return fmt.Errorf("restore: writer already in use")
	}

	if len(snapshot) < snapshotEnvelopeSize {
		return fmt.Errorf("%w: %d byte envelope", errs.ErrInvalidSnapshot, len(snapshot))
	}
	if magic := snapshotEngine.Uint32(snapshot[0:4]); magic != snapshotMagic {
		return fmt.Errorf("%w: magic 0x%08X", errs.ErrInvalidSnapshot, magic)
	}
	if v := snapshot[4]; v != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, v)
	}

	compression := format.CompressionType(snapshot[5])
	if !compression.IsValid() {
		return fmt.Errorf("%w: snapshot compression byte 0x%02X", errs.ErrUnknownCompression, snapshot[5])
	}
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}
	payload, err := codec.Decompress(snapshot[snapshotEnvelopeSize:])
	if err != nil {
		return fmt.Errorf("%w: decompress: %s", errs.ErrInvalidSnapshot, err)
	}

	r := snapshotReader{data: payload}

	emitted := r.u8() != 0

	var byteCounts []uint32
	if n := r.u32(); n > 0 {
		if uint64(n)*4 > uint64(r.remaining()) {
			r.fail()
		} else {
			byteCounts = make([]uint32, n)
			for i := range byteCounts {
				byteCounts[i] = r.u32()
			}
		}
	}
	block := r.bytes(r.u32())

	counters := make(map[int]int)
	if n := r.u32(); n > 0 {
		if uint64(n)*8 > uint64(r.remaining()) {
			r.fail()
		}
		for i := uint32(0); i < n && r.err == nil; i++ {
			frame := int(r.u32())
			counters[frame] = int(r.u32())
		}
	}

	var pending [][]byte
	if n := r.u32(); n > 0 {
		if uint64(n)*4 > uint64(r.remaining()) {
			r.fail()
		}
		for i := uint32(0); i < n && r.err == nil; i++ {
			if rec := r.bytes(r.u32()); rec != nil {
				pending = append(pending, rec)
			}
		}
	}

	if r.err != nil {
		return fmt.Errorf("%w: truncated payload", r.err)
	}
	if r.remaining() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidSnapshot, r.remaining())
	}

	w.emitted = emitted
	w.byteCounts = byteCounts
	w.block = block
	w.roisPerFrame = counters
	w.pending = pending

	return nil
}

// snapshotReader is a bounds-checked cursor over a snapshot payload.
// The first overrun sticks; callers check err once after reading.
type snapshotReader struct {
	data []byte
	off  int
	err  error
}

func (r *snapshotReader) fail() {
	if r.err == nil {
		r.err = errs.ErrInvalidSnapshot
	}
}

func (r *snapshotReader) remaining() int {
	return len(r.data) - r.off
}

func (r *snapshotReader) u8() byte {
	if r.err != nil || r.remaining() < 1 {
		r.fail()
		return 0
	}
	b := r.data[r.off]
	r.off++

	return b
}

func (r *snapshotReader) u32() uint32 {
	if r.err != nil || r.remaining() < 4 {
		r.fail()
		return 0
	}
	v := snapshotEngine.Uint32(r.data[r.off:])
	r.off += 4

	return v
}

func (r *snapshotReader) bytes(n uint32) []byte {
	if r.err != nil || uint64(n) > uint64(r.remaining()) {
		r.fail()
		return nil
	}
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, r.data[r.off:r.off+int(n)])
	r.off += int(n)

	return out
}
