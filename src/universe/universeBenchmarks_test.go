package universe

import (
	"fmt"
	"testing"
)

var sizes = [][2]int{{64, 64}, {200, 200}, {640, 360}}

func Benchmark_Tick(b *testing.B) {
	for _, s := range sizes {
		b.Run(fmt.Sprintf("%dx%d", s[0], s[1]), func(b *testing.B) {
			u, err := NewUniverseWithSeed(s[0], s[1], ModuloSeed)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Tick()
			}
		})
	}
}

func Benchmark_Cells(b *testing.B) {
	u := NewUniverse()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = u.Cells()
	}
}
