package syllabify

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/bastiangx/syllabix/pkg/spelling"
	"github.com/stretchr/testify/assert"
)

// denseDict offers a one and a two character syllable at every position, so
// every span of two is ambiguous.
func denseDict(n int) fakeDict {
	dict := make(fakeDict, n)
	for i := 0; i < n; i++ {
		dict[i] = append(dict[i], sp(i+1, 1, spelling.Normal, -1))
		if i+2 <= n {
			dict[i] = append(dict[i], sp(i+2, 2, spelling.Normal, -0.5))
		}
	}
	return dict
}

func TestDenseGraph(t *testing.T) {
	const n = 24
	g, farthest := build(t, denseDict(n), DefaultOptions(), strings.Repeat("a", n))

	assert.Equal(t, n, farthest)
	assert.Len(t, g.Vertices, n+1)
	assert.Equal(t, 2*n-1, g.EdgeCount())
	// every inner position splits some two-character span
	assert.Len(t, g.AmbiguousJoints, n-1)
}

func TestGraphReuseDoesNotGrow(t *testing.T) {
	const n = 32
	dict := denseDict(n)
	input := strings.Repeat("a", n)
	syl := New(dict, DefaultOptions())
	g := NewSyllableGraph()

	syl.BuildSyllableGraph(input, g)
	arena := cap(g.arena)
	for i := 0; i < 100; i++ {
		syl.BuildSyllableGraph(input, g)
	}
	assert.Equal(t, arena, cap(g.arena))
}

func BenchmarkBuildSyllableGraph(b *testing.B) {
	for _, n := range []int{4, 16, 64} {
		dict := denseDict(n)
		input := strings.Repeat("a", n)
		b.Run(fmt.Sprintf("len=%d", n), func(b *testing.B) {
			syl := New(dict, DefaultOptions())
			g := NewSyllableGraph()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				syl.BuildSyllableGraph(input, g)
			}
		})
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	b.Logf("heap in use after benchmarks: %d KiB", m.HeapInuse/1024)
}
