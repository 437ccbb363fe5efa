package services

import (
	"context"
	"log"
	"sync"

	"github.com/pkg/errors"

	"antworld/models"
)

// Simulation owns the single world map and ant of a running game. Every
// look and interact goes through it so that mutations have one writer.
type Simulation struct {
	world     *WorldMap
	ant       *Ant
	behaviors Behaviors
	narrator  Narrator

	writeMutex  sync.Mutex
	subsMutex   sync.Mutex
	subscribers map[int]chan models.Event
	nextSub     int
}

// Option configures a Simulation
type Option func(*Simulation)

// WithNarrator sets the look narrator
func WithNarrator(n Narrator) Option {
	return func(s *Simulation) { s.narrator = n }
}

// WithBehaviors replaces the behavior table
func WithBehaviors(b Behaviors) Option {
	return func(s *Simulation) { s.behaviors = b }
}

// NewSimulation creates a simulation over world and ant
func NewSimulation(world *WorldMap, ant *Ant, opts ...Option) *Simulation {
	s := &Simulation{
		world:       world,
		ant:         ant,
		behaviors:   DefaultBehaviors(),
		narrator:    StaticNarrator{},
		subscribers: make(map[int]chan models.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSimulationFromLayout builds the map and ant from a layout seed
func NewSimulationFromLayout(layout *models.Layout, opts ...Option) (*Simulation, error) {
	world, err := NewWorldMapFromLayout(layout)
	if err != nil {
		return nil, err
	}
	ant, err := NewAnt(world, layout.Ant)
	if err != nil {
		return nil, err
	}
	return NewSimulation(world, ant, opts...), nil
}

// World returns the simulation's map
func (s *Simulation) World() *WorldMap { return s.world }

// Ant returns the simulation's ant
func (s *Simulation) Ant() *Ant { return s.ant }

func (s *Simulation) behavior(kind models.EntityKind) (Behavior, error) {
	b, ok := s.behaviors[kind]
	if !ok {
		return Behavior{}, errors.Wrapf(ErrUnknownKind, "%s", kind)
	}
	return b, nil
}

func (s *Simulation) newEvent(action models.ActionKind, e models.Entity) models.Event {
	return models.Event{
		Action:   action,
		Target:   e.Pos,
		Kind:     e.Kind,
		KindName: e.Kind.String(),
		Sprite:   e.Sprite,
		Ant:      s.ant.Position(),
		Food:     s.ant.Food(),
	}
}

// Look describes the occupant of (x, y) without changing anything
func (s *Simulation) Look(ctx context.Context, x, y int) (models.Event, error) {
	s.writeMutex.Lock()
	e, err := s.world.At(x, y)
	if err != nil {
		s.writeMutex.Unlock()
		return models.Event{}, err
	}
	b, err := s.behavior(e.Kind)
	if err != nil {
		s.writeMutex.Unlock()
		return models.Event{}, err
	}
	base := b.Look(e)
	event := s.newEvent(models.ActionLook, e)
	s.writeMutex.Unlock()

	desc, err := s.narrator.Describe(ctx, e, base)
	if err != nil {
		log.Printf("Narrator failed for %s at %s: %v", e.Kind, e.Pos, err)
		desc = base
	}
	event.Description = desc

	s.publish(event)
	return event, nil
}

// Interact applies the occupant's interaction at (x, y)
func (s *Simulation) Interact(_ context.Context, x, y int) (models.Event, error) {
	s.writeMutex.Lock()
	e, err := s.world.At(x, y)
	if err != nil {
		s.writeMutex.Unlock()
		return models.Event{}, err
	}
	b, err := s.behavior(e.Kind)
	if err != nil {
		s.writeMutex.Unlock()
		return models.Event{}, err
	}
	outcome, err := b.Interact(s.world, s.ant, e)
	if err != nil {
		s.writeMutex.Unlock()
		return models.Event{}, errors.Wrapf(err, "interact with %s at %s", e.Kind, e.Pos)
	}
	event := s.newEvent(models.ActionInteract, e)
	event.Moved = outcome.Moved
	event.Replaced = outcome.Replaced
	s.writeMutex.Unlock()

	s.publish(event)
	return event, nil
}

// Do executes a parsed intent
func (s *Simulation) Do(ctx context.Context, in Intent) (models.Event, error) {
	switch in.Action {
	case models.ActionLook:
		return s.Look(ctx, in.Target.X, in.Target.Y)
	case models.ActionInteract:
		return s.Interact(ctx, in.Target.X, in.Target.Y)
	default:
		return models.Event{}, errors.Wrapf(ErrUnknownIntent, "action %q", in.Action)
	}
}

// Command parses text relative to the ant and executes it
func (s *Simulation) Command(ctx context.Context, text string) (models.Event, error) {
	in, err := ParseIntent(text, s.ant.Position())
	if err != nil {
		return models.Event{}, err
	}
	return s.Do(ctx, in)
}

// State returns a rendering snapshot
func (s *Simulation) State() models.WorldState {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	return models.WorldState{
		Width:  s.world.Width(),
		Height: s.world.Height(),
		Rows:   s.world.Rows(),
		Ant:    s.ant.Position(),
		Food:   s.ant.Food(),
	}
}

// Subscribe returns a stream of events and a function that cancels it.
// Events are dropped for subscribers that fall behind.
func (s *Simulation) Subscribe() (<-chan models.Event, func()) {
	s.subsMutex.Lock()
	defer s.subsMutex.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan models.Event, 64)
	s.subscribers[id] = ch

	return ch, func() {
		s.subsMutex.Lock()
		defer s.subsMutex.Unlock()
		if c, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(c)
		}
	}
}

func (s *Simulation) publish(event models.Event) {
	s.subsMutex.Lock()
	defer s.subsMutex.Unlock()

	for id, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			log.Printf("Subscriber %d is behind, dropping %s event", id, event.Action)
		}
	}
}
