package models

import "fmt"

// Coord identifies a grid cell
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Add returns the coordinate offset by d
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// SpriteID is the visual identity tag of an entity. It is owned by the
// rendering layer; the world only carries it around.
type SpriteID int

// Sprite registry
const (
	SpriteEmpty SpriteID = iota
	SpriteSand
	SpriteCherry
	SpriteLeaf
	SpriteStone
	SpriteWater
	SpriteAnt
)

// EntityKind tags the variant of a map entity
type EntityKind int

const (
	KindEmpty EntityKind = iota
	KindSand
	KindCherry
	KindLeaf
	KindStone
	KindWater
)

var kindNames = map[EntityKind]string{
	KindEmpty:  "empty",
	KindSand:   "sand",
	KindCherry: "cherry",
	KindLeaf:   "leaf",
	KindStone:  "stone",
	KindWater:  "water",
}

var kindSprites = map[EntityKind]SpriteID{
	KindEmpty:  SpriteEmpty,
	KindSand:   SpriteSand,
	KindCherry: SpriteCherry,
	KindLeaf:   SpriteLeaf,
	KindStone:  SpriteStone,
	KindWater:  SpriteWater,
}

func (k EntityKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sprite returns the sprite bound to this kind
func (k EntityKind) Sprite() SpriteID {
	return kindSprites[k]
}

// ParseKind resolves a kind from its name
func ParseKind(name string) (EntityKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Entity is the occupant of a single grid cell. Every cell holds exactly one;
// an unoccupied cell holds an Empty entity.
type Entity struct {
	Kind   EntityKind `json:"kind"`
	Sprite SpriteID   `json:"sprite"`
	Pos    Coord      `json:"pos"`
}

// NewEntity binds the sprite of kind and the cell coordinate
func NewEntity(kind EntityKind, x, y int) Entity {
	return Entity{Kind: kind, Sprite: kind.Sprite(), Pos: Coord{X: x, Y: y}}
}

func NewEmpty(x, y int) Entity  { return NewEntity(KindEmpty, x, y) }
func NewSand(x, y int) Entity   { return NewEntity(KindSand, x, y) }
func NewCherry(x, y int) Entity { return NewEntity(KindCherry, x, y) }
func NewLeaf(x, y int) Entity   { return NewEntity(KindLeaf, x, y) }
func NewStone(x, y int) Entity  { return NewEntity(KindStone, x, y) }
func NewWater(x, y int) Entity  { return NewEntity(KindWater, x, y) }

// IsEmpty reports whether the entity is the Empty variant
func (e Entity) IsEmpty() bool {
	return e.Kind == KindEmpty
}

// ActionKind is the kind of player action against a cell
type ActionKind string

const (
	ActionLook     ActionKind = "look"
	ActionInteract ActionKind = "interact"
)

// Event is the observable result of a look or interact call
type Event struct {
	Action      ActionKind `json:"action"`
	Target      Coord      `json:"target"`
	Kind        EntityKind `json:"kind"`
	KindName    string     `json:"kind_name"`
	Sprite      SpriteID   `json:"sprite"`
	Description string     `json:"description,omitempty"`
	Moved       bool       `json:"moved"`
	Ant         Coord      `json:"ant"`
	Food        int        `json:"food"`
	Replaced    *Entity    `json:"replaced,omitempty"` // new occupant, when the cell changed
}
