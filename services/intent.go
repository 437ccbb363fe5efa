package services

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"antworld/models"
)

// Intent is a recognized player action against one cell
type Intent struct {
	Action models.ActionKind `json:"action"`
	Target models.Coord      `json:"target"`
}

var intentVerbs = map[string]models.ActionKind{
	"look":     models.ActionLook,
	"inspect":  models.ActionLook,
	"examine":  models.ActionLook,
	"see":      models.ActionLook,
	"interact": models.ActionInteract,
	"use":      models.ActionInteract,
	"dig":      models.ActionInteract,
	"eat":      models.ActionInteract,
	"take":     models.ActionInteract,
	"go":       models.ActionInteract,
	"move":     models.ActionInteract,
	"walk":     models.ActionInteract,
}

// filler words dropped from spoken or typed commands
var intentFiller = map[string]bool{
	"at": true, "to": true, "the": true, "a": true, "on": true, "please": true,
	"sand": true, "cherry": true, "leaf": true, "stone": true, "water": true, "ground": true,
}

// Direction returns the unit offset of a compass or screen direction. North
// is up the screen, towards smaller y.
func Direction(name string) (models.Coord, bool) {
	d := models.Coord{}
	switch name {
	case "north", "up", "n":
		d.Y--
	case "south", "down", "s":
		d.Y++
	case "east", "right", "e":
		d.X++
	case "west", "left", "w":
		d.X--
	case "northeast", "ne":
		d.X++
		d.Y--
	case "northwest", "nw":
		d.X--
		d.Y--
	case "southeast", "se":
		d.X++
		d.Y++
	case "southwest", "sw":
		d.X--
		d.Y++
	case "here":
	default:
		return d, false
	}
	return d, true
}

// ParseIntent reads text such as "look 3 4", "dig north" or "eat the cherry
// east". Directions resolve relative to ant. Targets are not bounds checked.
func ParseIntent(text string, ant models.Coord) (Intent, error) {
	fields := strings.Fields(strings.ToLower(strings.NewReplacer(",", " ", ".", " ", "!", " ", "?", " ").Replace(text)))

	var words []string
	for _, f := range fields {
		if !intentFiller[f] {
			words = append(words, f)
		}
	}
	if len(words) == 0 {
		return Intent{}, errors.Wrapf(ErrUnknownIntent, "%q", text)
	}

	action, ok := intentVerbs[words[0]]
	if !ok {
		return Intent{}, errors.Wrapf(ErrUnknownIntent, "verb %q", words[0])
	}
	args := words[1:]

	switch len(args) {
	case 0:
		if action == models.ActionLook {
			return Intent{Action: action, Target: ant}, nil
		}
	case 1:
		if d, ok := Direction(args[0]); ok {
			return Intent{Action: action, Target: ant.Add(d)}, nil
		}
	case 2:
		x, errX := strconv.Atoi(args[0])
		y, errY := strconv.Atoi(args[1])
		if errX == nil && errY == nil {
			return Intent{Action: action, Target: models.Coord{X: x, Y: y}}, nil
		}
	}

	return Intent{}, errors.Wrapf(ErrUnknownIntent, "no target in %q", text)
}
