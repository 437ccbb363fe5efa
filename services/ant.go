package services

import (
	"sync"

	"github.com/pkg/errors"

	"antworld/models"
)

// Ant is the player token. Its position always lies on the map it was
// created for.
type Ant struct {
	world    *WorldMap
	pos      models.Coord
	food     int
	antMutex sync.RWMutex
}

// NewAnt places the ant at start
func NewAnt(world *WorldMap, start models.Coord) (*Ant, error) {
	if !world.InBounds(start) {
		return nil, errors.Wrapf(ErrOutOfBounds, "ant start %s", start)
	}
	return &Ant{world: world, pos: start}, nil
}

// Position returns the current cell of the ant
func (a *Ant) Position() models.Coord {
	a.antMutex.RLock()
	defer a.antMutex.RUnlock()
	return a.pos
}

// MoveBy puts the ant on (x, y). Despite the name this is an absolute
// assignment, which is how every interaction uses it.
func (a *Ant) MoveBy(x, y int) error {
	dest := models.Coord{X: x, Y: y}
	if !a.world.InBounds(dest) {
		return errors.Wrapf(ErrOutOfBounds, "ant move to %s", dest)
	}

	a.antMutex.Lock()
	defer a.antMutex.Unlock()
	a.pos = dest
	return nil
}

// Food returns how many resources the ant has consumed
func (a *Ant) Food() int {
	a.antMutex.RLock()
	defer a.antMutex.RUnlock()
	return a.food
}

// Feed adds n consumed resources
func (a *Ant) Feed(n int) {
	a.antMutex.Lock()
	defer a.antMutex.Unlock()
	a.food += n
}
