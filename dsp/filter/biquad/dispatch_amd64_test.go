//go:build amd64 && !purego

package biquad

import (
	"sync"
	"testing"

	archregistry "github.com/cwbudde/algo-fart/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func resetProcessBlockDispatchForTest() {
	processBlockImpl = nil
	processBlockInitOnce = sync.Once{}
}

func TestProcessBlockDispatchAMD64(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		wantImpl string
	}{
		{"generic-forced", cpu.Features{ForceGeneric: true, HasAVX2: true, Architecture: "amd64"}, "generic"},
		{"sse2-only", cpu.Features{HasSSE2: true, Architecture: "amd64"}, "generic"},
		{"avx2", cpu.Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"}, "unroll4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu.SetForcedFeatures(tt.features)
			defer cpu.ResetDetection()
			resetProcessBlockDispatchForTest()
			defer resetProcessBlockDispatchForTest()

			entry := archregistry.Global.Lookup(cpu.DetectFeatures())
			if entry == nil || entry.Name != tt.wantImpl {
				t.Fatalf("lookup = %#v, want %s", entry, tt.wantImpl)
			}

			s := NewSection(testCoefficients())
			ref := NewSection(testCoefficients())
			buf := []float64{1, 0, 0, 0, 0.5, -0.5, 0.25}
			want := make([]float64, len(buf))
			for i, x := range buf {
				want[i] = ref.ProcessSample(x)
			}
			s.ProcessBlock(buf)
			for i := range buf {
				if !almostEqual(buf[i], want[i], eps) {
					t.Fatalf("sample %d: got %v, want %v", i, buf[i], want[i])
				}
			}
		})
	}
}
