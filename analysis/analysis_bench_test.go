package analysis

import (
	"testing"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/synth"
)

func BenchmarkFitChannels(b *testing.B) {
	_, c := synthCube(b, 16, 32, synth.WithNoise(synth.ConstantNoise(0.1)))
	g, _ := cube.NewGrid(32, 32)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FitChannels(c, g, nil, ChannelConfig{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFitSpectrum(b *testing.B) {
	axis, spec := lineSpectrum(b, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FitSpectrum(axis, spec, nil); err != nil {
			b.Fatal(err)
		}
	}
}
