package models

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is returned for layouts whose rows do not describe a
// complete grid
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is a read-only seed for a world map
type Layout struct {
	Name   string   `json:"name" yaml:"name"`
	Width  int      `json:"width" yaml:"width"`
	Height int      `json:"height" yaml:"height"`
	Ant    Coord    `json:"ant" yaml:"ant"`
	Rows   []string `json:"rows" yaml:"rows"` // one glyph per cell, see Glyph
}

// Tile glyphs used in layout rows
const (
	GlyphEmpty  = '.'
	GlyphSand   = 's'
	GlyphCherry = 'c'
	GlyphLeaf   = 'l'
	GlyphStone  = '#'
	GlyphWater  = '~'
)

var glyphKinds = map[rune]EntityKind{
	GlyphEmpty:  KindEmpty,
	GlyphSand:   KindSand,
	GlyphCherry: KindCherry,
	GlyphLeaf:   KindLeaf,
	GlyphStone:  KindStone,
	GlyphWater:  KindWater,
}

// KindForGlyph maps a layout glyph to its entity kind
func KindForGlyph(r rune) (EntityKind, bool) {
	k, ok := glyphKinds[r]
	return k, ok
}

// Glyph returns the layout glyph of a kind
func Glyph(k EntityKind) rune {
	for r, kind := range glyphKinds {
		if kind == k {
			return r
		}
	}
	return '?'
}

// Validate checks the dimensions, the glyphs and the ant start
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	if len(l.Rows) != l.Height {
		return fmt.Errorf("%w: %d rows for height %d", ErrInvalidLayout, len(l.Rows), l.Height)
	}
	for y, row := range l.Rows {
		runes := []rune(row)
		if len(runes) != l.Width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLayout, y, len(runes), l.Width)
		}
		for x, r := range runes {
			if _, ok := glyphKinds[r]; !ok {
				return fmt.Errorf("%w: unknown glyph %q at (%d, %d)", ErrInvalidLayout, r, x, y)
			}
		}
	}
	if l.Ant.X < 0 || l.Ant.X >= l.Width || l.Ant.Y < 0 || l.Ant.Y >= l.Height {
		return fmt.Errorf("%w: ant start %s outside %dx%d", ErrInvalidLayout, l.Ant, l.Width, l.Height)
	}
	return nil
}

// Entities expands the rows into a grid indexed [y][x]
func (l *Layout) Entities() ([][]Entity, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	cells := make([][]Entity, l.Height)
	for y, row := range l.Rows {
		cells[y] = make([]Entity, l.Width)
		for x, r := range []rune(row) {
			cells[y][x] = NewEntity(glyphKinds[r], x, y)
		}
	}
	return cells, nil
}

// EmptyLayout returns an all-empty layout with the ant in the corner
func EmptyLayout(name string, width, height int) *Layout {
	rows := make([]string, height)
	for y := range rows {
		row := make([]rune, width)
		for x := range row {
			row[x] = GlyphEmpty
		}
		rows[y] = string(row)
	}
	return &Layout{Name: name, Width: width, Height: height, Rows: rows}
}

// WorldState is a rendering snapshot of the map and the ant
type WorldState struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
	Ant    Coord    `json:"ant"`
	Food   int      `json:"food"`
}
