package match_test

import (
	"testing"

	"github.com/katalvlaran/rulenet/bngl"
	"github.com/katalvlaran/rulenet/builder"
	"github.com/katalvlaran/rulenet/match"
)

// BenchmarkFindAll_PairInPolymer counts bonded A-A pairs in a 200-unit chain.
func BenchmarkFindAll_PairInPolymer(b *testing.B) {
	pattern := bngl.MustParsePattern("A(r!1).A(l!1)")
	target := builder.MustBuild(nil, builder.Chain(200))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := match.FindAll(pattern, target); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindAll_ArmsOfStar enumerates every ordered pair of arms of a 12-arm hub.
func BenchmarkFindAll_ArmsOfStar(b *testing.B) {
	pattern := bngl.MustParsePattern("A(l!1).H(s!1,s!2).A(l!2)")
	target := builder.MustBuild(nil, builder.Star(12))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := match.FindAll(pattern, target); err != nil {
			b.Fatal(err)
		}
	}
}
