package roi

import (
	"bytes"
	"image"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

func zipEntryNames(t *testing.T, archive []byte) []string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	return names
}

func TestRoiSet_RoundTrip(t *testing.T) {
	outline := []image.Point{{X: 2, Y: 3}, {X: 9, Y: 3}, {X: 9, Y: 8}}

	var records [][]byte
	for _, name := range []string{"cellA", "cellB"} {
		data, err := Encode(outline, WithName(name))
		require.NoError(t, err)
		records = append(records, data)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRoiSet(&buf, records))

	require.Equal(t, []string{"cellA.roi", "cellB.roi"}, zipEntryNames(t, buf.Bytes()))

	got, err := ReadRoiSet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Equal(t, records, got)

	for _, data := range got {
		_, err := Decode(data)
		require.NoError(t, err)
	}
}

func TestRoiSet_EntryNaming(t *testing.T) {
	outline := []image.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}

	encode := func(opts ...EncodeOption) []byte {
		data, err := Encode(outline, opts...)
		require.NoError(t, err)

		return data
	}

	records := [][]byte{
		encode(WithName("cellA")),
		encode(WithName("cellA")),     // duplicate gets a suffix
		encode(WithName("nuc/left")),  // path separator sanitized
		encode(WithName("")),          // unnamed falls back to its index
		{0xDE, 0xAD},                  // undecodable falls back too
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRoiSet(&buf, records))

	want := []string{"cellA.roi", "cellA-2.roi", "nuc_left.roi", "0004.roi", "0005.roi"}
	require.Equal(t, want, zipEntryNames(t, buf.Bytes()))
}

func TestReadRoiSet_IgnoresOtherEntries(t *testing.T) {
	record, err := Encode([]image.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, WithName("kept"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	f, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("not a record"))
	require.NoError(t, err)

	f, err = zw.Create("kept.roi")
	require.NoError(t, err)
	_, err = f.Write(record)
	require.NoError(t, err)

	require.NoError(t, zw.Close())

	records, err := ReadRoiSet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Equal(t, [][]byte{record}, records)
}

func TestReadRoiSet_NotAnArchive(t *testing.T) {
	data := []byte("plain bytes, not a zip archive")

	_, err := ReadRoiSet(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
}
