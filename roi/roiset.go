package roi

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
)

// WriteRoiSet writes encoded records into a zip archive following the
// RoiSet convention: one ".roi" entry per record, named after the record.
//
// Entry names come from each record's decoded name, falling back to the
// one-based record index for unnamed or undecodable records. Path
// separators and control characters are replaced, and duplicate names get
// a numeric suffix, so every record stays addressable after extraction.
func WriteRoiSet(w io.Writer, records [][]byte) error {
	zw := zip.NewWriter(w)

	used := make(map[string]int, len(records))
	for i, data := range records {
		name := ""
		if rec, err := Decode(data); err == nil {
			name = rec.Name
		}
		if name == "" {
			name = fmt.Sprintf("%04d", i+1)
		}
		name = sanitizeEntryName(name)

		base := name
		for seq := 2; used[name] > 0; seq++ {
			name = fmt.Sprintf("%s-%d", base, seq)
		}
		used[name] = 1

		f, err := zw.Create(name + ".roi")
		if err != nil {
			return fmt.Errorf("create %s.roi: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("write %s.roi: %w", name, err)
		}
	}

	return zw.Close()
}

// ReadRoiSet reads every ".roi" entry of a RoiSet zip archive and returns
// the raw records in archive order. Other entries are ignored. The records
// come back still encoded; pass them to Decode or DecodeOverlaySet.
func ReadRoiSet(r io.ReaderAt, size int64) ([][]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open roi set: %w", err)
	}

	var records [][]byte
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".roi") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		records = append(records, data)
	}

	return records, nil
}

func sanitizeEntryName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case r < 0x20:
			return '_'
		default:
			return r
		}
	}, name)
}
