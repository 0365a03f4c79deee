package sim

import "github.com/cory-johannsen/castlesiege/internal/game/geom"

// FeatureKind identifies a decorative castle feature.
type FeatureKind string

const (
	FeatureTower  FeatureKind = "tower"
	FeatureBanner FeatureKind = "banner"
)

// Feature is static scenery. It has no gameplay effect.
type Feature struct {
	Kind FeatureKind
	Pos  geom.Vec
	Size float64
}

// layoutFeatures places a tower in each corner and banners evenly along the
// top wall.
func layoutFeatures(b geom.Bounds) []Feature {
	const (
		towerSize  = 36
		bannerSize = 14
		banners    = 4
	)
	inset := towerSize / 2.0
	out := []Feature{
		{Kind: FeatureTower, Pos: geom.Vec{inset, inset}, Size: towerSize},
		{Kind: FeatureTower, Pos: geom.Vec{b.Width - inset, inset}, Size: towerSize},
		{Kind: FeatureTower, Pos: geom.Vec{inset, b.Height - inset}, Size: towerSize},
		{Kind: FeatureTower, Pos: geom.Vec{b.Width - inset, b.Height - inset}, Size: towerSize},
	}
	step := b.Width / (banners + 1)
	for i := 1; i <= banners; i++ {
		out = append(out, Feature{Kind: FeatureBanner, Pos: geom.Vec{step * float64(i), bannerSize}, Size: bannerSize})
	}
	return out
}
