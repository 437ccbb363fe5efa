package services

import "antworld/models"

// Outcome describes what an interaction changed
type Outcome struct {
	Moved    bool
	Replaced *models.Entity
	Fed      int
}

// LookFunc returns the plain description of an entity. It gets no access to
// the map or the ant, so looking can never mutate them.
type LookFunc func(e models.Entity) string

// InteractFunc applies an interaction with e to the map and the ant
type InteractFunc func(world *WorldMap, ant *Ant, e models.Entity) (Outcome, error)

// Behavior is the look/interact operation pair for one entity kind
type Behavior struct {
	Look     LookFunc
	Interact InteractFunc
}

// Behaviors maps every entity kind to its operations
type Behaviors map[models.EntityKind]Behavior

// DefaultBehaviors returns the operation table for the built-in kinds
func DefaultBehaviors() Behaviors {
	return Behaviors{
		models.KindEmpty: {
			Look:     describe("Nothing but bare ground."),
			Interact: moveOnto,
		},
		models.KindSand: {
			Look:     describe("A heap of loose sand. An ant could dig through it."),
			Interact: clearAndMove(0),
		},
		models.KindCherry: {
			Look:     describe("A ripe cherry, far too big to carry but fine to eat."),
			Interact: clearAndMove(1),
		},
		models.KindLeaf: {
			Look:     describe("A fallen leaf, still green."),
			Interact: clearAndMove(1),
		},
		models.KindStone: {
			Look:     describe("A stone. Nothing gets through that."),
			Interact: blocked,
		},
		models.KindWater: {
			Look:     describe("A puddle of water. Ants do not swim."),
			Interact: blocked,
		},
	}
}

// Register adds or replaces the operations of kind
func (b Behaviors) Register(kind models.EntityKind, behavior Behavior) {
	b[kind] = behavior
}

func describe(text string) LookFunc {
	return func(models.Entity) string { return text }
}

// moveOnto is a pure move; the cell is left as it is
func moveOnto(_ *WorldMap, ant *Ant, e models.Entity) (Outcome, error) {
	if err := ant.MoveBy(e.Pos.X, e.Pos.Y); err != nil {
		return Outcome{}, err
	}
	return Outcome{Moved: true}, nil
}

// clearAndMove empties the cell, moves the ant onto it and feeds it
func clearAndMove(food int) InteractFunc {
	return func(world *WorldMap, ant *Ant, e models.Entity) (Outcome, error) {
		empty := models.NewEmpty(e.Pos.X, e.Pos.Y)
		if err := world.Set(e.Pos.X, e.Pos.Y, empty); err != nil {
			return Outcome{}, err
		}
		if err := ant.MoveBy(e.Pos.X, e.Pos.Y); err != nil {
			return Outcome{}, err
		}
		if food > 0 {
			ant.Feed(food)
		}
		return Outcome{Moved: true, Replaced: &empty, Fed: food}, nil
	}
}

func blocked(*WorldMap, *Ant, models.Entity) (Outcome, error) {
	return Outcome{}, nil
}
