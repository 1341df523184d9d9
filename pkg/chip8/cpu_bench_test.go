package chip8

import "testing"

// BenchmarkCycle_JP measures raw fetch and dispatch overhead with a
// single jump instruction that targets itself.
func BenchmarkCycle_JP(b *testing.B) {
	c := New()
	loadWords(c, 0x1200) // jp $200

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Cycle(Keys{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCycle_ADD measures arithmetic throughput with an
// add-and-jump loop.
func BenchmarkCycle_ADD(b *testing.B) {
	c := New()
	loadWords(c, 0x7001, 0x1200) // add V0, 1; jp $200

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Cycle(Keys{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCycle_DRW measures sprite blits by drawing the zero glyph
// and jumping back, toggling the same pixels every pass.
func BenchmarkCycle_DRW(b *testing.B) {
	c := New()
	loadWords(c, 0xD015, 0x1200) // drw V0, V1, 5; jp $200

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Cycle(Keys{}); err != nil {
			b.Fatal(err)
		}
	}
}
