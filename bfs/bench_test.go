package bfs_test

import (
	"testing"

	"github.com/katalvlaran/rulenet/bfs"
)

// BenchmarkBFS_Chain measures BFS over a 1000-molecule linear polymer.
func BenchmarkBFS_Chain(b *testing.B) {
	g := chain(b, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bfs.BFS(g, 0); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkComponents measures splitting a polymer into complexes.
func BenchmarkComponents(b *testing.B) {
	g := chain(b, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bfs.Components(g)
	}
}
