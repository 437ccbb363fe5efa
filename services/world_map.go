package services

import (
	"sync"

	"github.com/pkg/errors"

	"antworld/models"
)

// WorldMap owns the occupant of every grid cell
type WorldMap struct {
	width    int
	height   int
	cells    [][]*models.Entity
	mapMutex sync.RWMutex
}

// NewWorldMap creates a width x height map filled with Empty entities
func NewWorldMap(width, height int) (*WorldMap, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(models.ErrInvalidLayout, "dimensions %dx%d", width, height)
	}

	cells := make([][]*models.Entity, height)
	for y := range cells {
		cells[y] = make([]*models.Entity, width)
		for x := range cells[y] {
			e := models.NewEmpty(x, y)
			cells[y][x] = &e
		}
	}

	return &WorldMap{width: width, height: height, cells: cells}, nil
}

// NewWorldMapFromLayout builds a map from a layout seed
func NewWorldMapFromLayout(layout *models.Layout) (*WorldMap, error) {
	entities, err := layout.Entities()
	if err != nil {
		return nil, err
	}

	wm, err := NewWorldMap(layout.Width, layout.Height)
	if err != nil {
		return nil, err
	}
	for y, row := range entities {
		for x := range row {
			e := row[x]
			wm.cells[y][x] = &e
		}
	}
	return wm, nil
}

// Width returns the number of columns
func (wm *WorldMap) Width() int { return wm.width }

// Height returns the number of rows
func (wm *WorldMap) Height() int { return wm.height }

// InBounds reports whether c lies on the grid
func (wm *WorldMap) InBounds(c models.Coord) bool {
	return c.X >= 0 && c.X < wm.width && c.Y >= 0 && c.Y < wm.height
}

func (wm *WorldMap) checkBounds(x, y int) error {
	if !wm.InBounds(models.Coord{X: x, Y: y}) {
		return errors.Wrapf(ErrOutOfBounds, "(%d, %d) outside %dx%d grid", x, y, wm.width, wm.height)
	}
	return nil
}

// At returns the entity occupying (x, y)
func (wm *WorldMap) At(x, y int) (models.Entity, error) {
	if err := wm.checkBounds(x, y); err != nil {
		return models.Entity{}, err
	}

	wm.mapMutex.RLock()
	defer wm.mapMutex.RUnlock()

	e := wm.cells[y][x]
	if e == nil {
		return models.Entity{}, errors.Wrapf(ErrInvariantViolation, "cell (%d, %d) has no occupant", x, y)
	}
	return *e, nil
}

// Set replaces the occupant of (x, y). The stored entity is rebound to the
// cell coordinate.
func (wm *WorldMap) Set(x, y int, entity models.Entity) error {
	if err := wm.checkBounds(x, y); err != nil {
		return err
	}

	entity.Pos = models.Coord{X: x, Y: y}

	wm.mapMutex.Lock()
	defer wm.mapMutex.Unlock()

	wm.cells[y][x] = &entity
	return nil
}

// Snapshot copies the grid, indexed [y][x]
func (wm *WorldMap) Snapshot() [][]models.Entity {
	wm.mapMutex.RLock()
	defer wm.mapMutex.RUnlock()

	out := make([][]models.Entity, wm.height)
	for y, row := range wm.cells {
		out[y] = make([]models.Entity, wm.width)
		for x, e := range row {
			out[y][x] = *e
		}
	}
	return out
}

// Count returns how many cells hold kind
func (wm *WorldMap) Count(kind models.EntityKind) int {
	wm.mapMutex.RLock()
	defer wm.mapMutex.RUnlock()

	n := 0
	for _, row := range wm.cells {
		for _, e := range row {
			if e.Kind == kind {
				n++
			}
		}
	}
	return n
}

// Rows renders the grid back into layout glyph rows
func (wm *WorldMap) Rows() []string {
	wm.mapMutex.RLock()
	defer wm.mapMutex.RUnlock()

	rows := make([]string, wm.height)
	for y, row := range wm.cells {
		glyphs := make([]rune, wm.width)
		for x, e := range row {
			glyphs[x] = models.Glyph(e.Kind)
		}
		rows[y] = string(glyphs)
	}
	return rows
}
