package roi

import (
	"fmt"
	"image"
	"math"
	"testing"
)

func benchOutline(n int) []image.Point {
	points := make([]image.Point, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = image.Point{
			X: 200 + int(150*math.Cos(angle)),
			Y: 200 + int(150*math.Sin(angle)),
		}
	}

	return points
}

func BenchmarkEncode(b *testing.B) {
	points := benchOutline(100)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Encode(points, WithName("bench")); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	data, err := Encode(benchOutline(100), WithName("bench"))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssembleBlock(b *testing.B) {
	records := make([][]byte, 50)
	for i := range records {
		data, err := Encode(benchOutline(64), WithPosition(0, 0, i), WithIndex(0))
		if err != nil {
			b.Fatal(err)
		}
		records[i] = data
	}

	b.ReportAllocs()
	for b.Loop() {
		AssembleBlock(records)
	}
}

func BenchmarkSplitBlock(b *testing.B) {
	records := make([][]byte, 50)
	for i := range records {
		data, err := Encode(benchOutline(64), WithPosition(0, 0, i), WithName(fmt.Sprintf("track-%d", i)))
		if err != nil {
			b.Fatal(err)
		}
		records[i] = data
	}
	block, byteCounts := AssembleBlock(records)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := SplitBlock(block, byteCounts); err != nil {
			b.Fatal(err)
		}
	}
}
