package persistence

import (
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/rand"

	"antworld/models"
)

// RandomSource generates scattered layouts from a seed. The same seed and
// name always give the same layout.
type RandomSource struct {
	Width  int
	Height int
	Seed   uint64

	// Weights of each glyph; the remainder of a roll is empty ground
	Weights map[rune]int
}

// DefaultWeights scatter mostly sand with a few cherries and obstacles
var DefaultWeights = map[rune]int{
	models.GlyphSand:   40,
	models.GlyphCherry: 5,
	models.GlyphLeaf:   5,
	models.GlyphStone:  8,
	models.GlyphWater:  4,
}

// NewRandomSource creates a generator for width x height layouts
func NewRandomSource(width, height int, seed uint64) *RandomSource {
	return &RandomSource{Width: width, Height: height, Seed: seed, Weights: DefaultWeights}
}

// LoadLayout generates a layout. The ant starts in the middle on empty
// ground.
func (rs *RandomSource) LoadLayout(name string) (*models.Layout, error) {
	if rs.Width <= 0 || rs.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", models.ErrInvalidLayout, rs.Width, rs.Height)
	}

	rng := rand.New(rand.NewSource(rs.Seed ^ hashName(name)))
	glyphs := []rune{models.GlyphSand, models.GlyphCherry, models.GlyphLeaf, models.GlyphStone, models.GlyphWater}

	ant := models.Coord{X: rs.Width / 2, Y: rs.Height / 2}
	rows := make([]string, rs.Height)
	for y := range rows {
		row := make([]rune, rs.Width)
		for x := range row {
			row[x] = models.GlyphEmpty
			if x == ant.X && y == ant.Y {
				continue
			}
			roll := rng.Intn(100)
			for _, g := range glyphs {
				w := rs.Weights[g]
				if roll < w {
					row[x] = g
					break
				}
				roll -= w
			}
		}
		rows[y] = string(row)
	}

	layout := &models.Layout{Name: name, Width: rs.Width, Height: rs.Height, Ant: ant, Rows: rows}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

// Close is a no-op for generated layouts
func (rs *RandomSource) Close() error {
	return nil
}

func hashName(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}
