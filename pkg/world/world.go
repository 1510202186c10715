package world

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateEvent is returned when two events are placed on the same tile.
var ErrDuplicateEvent = errors.New("duplicate event")

// Event is a stationary encounter bound to one tile.
type Event struct {
	Preview string `json:"preview"` // Shown while standing on the tile
	Tree    *Tree  `json:"-"`       // Entered on interact
}

// World maps tiles to events. It is populated at load time and read-only
// during play.
type World struct {
	events map[Pos]*Event
}

func NewWorld() *World {
	return &World{events: make(map[Pos]*Event)}
}

// AddEvent places ev at pos.
func (w *World) AddEvent(pos Pos, ev *Event) error {
	if ev == nil || ev.Tree == nil {
		return fmt.Errorf("event at %s has no tree", pos)
	}
	if _, ok := w.events[pos]; ok {
		return fmt.Errorf("event at %s: %w", pos, ErrDuplicateEvent)
	}
	w.events[pos] = ev
	return nil
}

// EventAt returns the event on a tile, or nil.
func (w *World) EventAt(pos Pos) *Event {
	return w.events[pos]
}

// Len returns the number of events.
func (w *World) Len() int {
	return len(w.events)
}

// Positions lists every tile holding an event, ordered by y then x.
func (w *World) Positions() []Pos {
	out := make([]Pos, 0, len(w.events))
	for p := range w.events {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Pos) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})
	return out
}
