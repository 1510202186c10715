package state

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/exploration/pkg/world"
)

// State is the mutable side of one playthrough. The World is never touched
// through it: Event points at the world's read-only event and the traversal
// is held as a node id plus the path of actions that reached it.
type State struct {
	ID        uuid.UUID      `json:"id"`                  // Unique ID per session
	Pos       world.Pos      `json:"pos"`                 // Current tile
	Inventory []world.Item   `json:"inventory,omitempty"` // In acquisition order
	Event     *world.Event   `json:"-"`                   // Event cached on arrival at Pos
	InEvent   bool           `json:"in_event"`            // True while traversing Event's tree
	Node      world.NodeID   `json:"node"`                // Current node, valid while InEvent
	Path      []world.Action `json:"path,omitempty"`      // Actions taken since entering

	// drained holds the nodes whose items were already granted during the
	// current traversal.
	drained map[world.NodeID]bool
}

// New starts a session on start holding a copy of inventory.
func New(start world.Pos, inventory []world.Item) *State {
	return &State{
		ID:        uuid.New(),
		Pos:       start,
		Inventory: slices.Clone(inventory),
	}
}

// Arrive caches the event found on the current tile (nil if none) and drops
// any traversal in progress.
func (s *State) Arrive(ev *world.Event) {
	s.Event = ev
	s.Leave()
}

// Enter starts a traversal at the root of the cached event. It reports false
// when there is no event here.
func (s *State) Enter() bool {
	if s.Event == nil {
		return false
	}
	s.InEvent = true
	s.Node = world.Root
	s.Path = nil
	s.drained = nil
	return true
}

// Leave ends the traversal without forgetting the cached event.
func (s *State) Leave() {
	s.InEvent = false
	s.Node = world.Root
	s.Path = nil
	s.drained = nil
}

// Descend records a successful step along on into node to, and moves the
// node's items into the inventory the first time it is entered during this
// traversal. Items are taken from the end of the node's list first.
func (s *State) Descend(on world.Action, to world.NodeID) {
	s.Path = append(s.Path, on)
	s.Node = to

	if s.drained[to] {
		return
	}
	if s.drained == nil {
		s.drained = make(map[world.NodeID]bool)
	}
	s.drained[to] = true

	n, ok := s.Event.Tree.Node(to)
	if !ok {
		return
	}
	for i := len(n.Items) - 1; i >= 0; i-- {
		s.Inventory = append(s.Inventory, n.Items[i])
	}
}

// Retreat pops the last action off the path. It reports false at the root.
func (s *State) Retreat() (world.Action, bool) {
	if len(s.Path) == 0 {
		return world.Action{}, false
	}
	last := s.Path[len(s.Path)-1]
	s.Path = s.Path[:len(s.Path)-1]
	return last, true
}

// Drained reports whether a node's items were already granted during the
// current traversal.
func (s *State) Drained(id world.NodeID) bool {
	return s.drained[id]
}

// Clone returns a deep copy. The cached event is shared since it belongs to
// the read-only World.
func (s *State) Clone() *State {
	c := *s
	c.Inventory = slices.Clone(s.Inventory)
	c.Path = slices.Clone(s.Path)
	c.drained = maps.Clone(s.drained)
	return &c
}

// DescribeInventory lists one item per line, or says the inventory is empty.
func (s *State) DescribeInventory() string {
	if len(s.Inventory) == 0 {
		return "You have no items."
	}
	lines := make([]string, len(s.Inventory))
	for i, it := range s.Inventory {
		lines[i] = it.Describe()
	}
	return strings.Join(lines, "\n")
}
