package state

import (
	"testing"

	"github.com/jwebster45206/exploration/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = world.Item{ID: 1, Name: "key", Type: world.Normal()}

func chestEvent(t *testing.T) (*world.Event, world.NodeID) {
	t.Helper()
	tree := world.NewTree(world.Node{Text: "A chest."})
	open, err := tree.AddChild(world.Root, world.Simple("open"), world.Node{
		Text: "Inside: a sword and a map.",
		Items: []world.Item{
			{ID: 2, Name: "sword", Type: world.Weapon(5)},
			{ID: 3, Name: "map", Type: world.Normal()},
		},
	})
	require.NoError(t, err)
	return &world.Event{Preview: "A chest sits here.", Tree: tree}, open
}

func TestNew(t *testing.T) {
	inv := []world.Item{key}
	s := New(world.Pos{X: 1, Y: 2}, inv)
	inv[0].Name = "mutated"

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", s.ID.String())
	assert.Equal(t, world.Pos{X: 1, Y: 2}, s.Pos)
	assert.Equal(t, "key", s.Inventory[0].Name)
	assert.False(t, s.InEvent)
}

func TestState_EnterWithoutEvent(t *testing.T) {
	s := New(world.Pos{}, nil)
	if s.Enter() {
		t.Fatal("expected Enter to fail without an event")
	}
	if s.InEvent {
		t.Error("expected to stay in free roam")
	}
}

func TestState_DescendGrantsItemsOnce(t *testing.T) {
	ev, open := chestEvent(t)
	s := New(world.Pos{}, nil)
	s.Arrive(ev)
	require.True(t, s.Enter())

	s.Descend(world.Simple("open"), open)
	assert.Equal(t, []world.Action{world.Simple("open")}, s.Path)
	assert.Equal(t, open, s.Node)
	require.Len(t, s.Inventory, 2)
	assert.Equal(t, "map", s.Inventory[0].Name, "items come off the end of the node first")
	assert.Equal(t, "sword", s.Inventory[1].Name)
	assert.True(t, s.Drained(open))

	_, ok := s.Retreat()
	require.True(t, ok)
	s.Node = world.Root
	s.Descend(world.Simple("open"), open)
	assert.Len(t, s.Inventory, 2, "second visit in the same traversal grants nothing")

	n, _ := ev.Tree.Node(open)
	assert.Len(t, n.Items, 2, "world tree keeps its items")
}

func TestState_EnterStartsNewTraversal(t *testing.T) {
	ev, open := chestEvent(t)
	s := New(world.Pos{}, nil)
	s.Arrive(ev)
	s.Enter()
	s.Descend(world.Simple("open"), open)

	s.Enter()
	assert.Empty(t, s.Path)
	assert.Equal(t, world.Root, s.Node)
	assert.False(t, s.Drained(open))
}

func TestState_ArriveClearsTraversal(t *testing.T) {
	ev, open := chestEvent(t)
	s := New(world.Pos{}, nil)
	s.Arrive(ev)
	s.Enter()
	s.Descend(world.Simple("open"), open)

	s.Arrive(nil)
	assert.Nil(t, s.Event)
	assert.False(t, s.InEvent)
	assert.Empty(t, s.Path)
	assert.Len(t, s.Inventory, 2, "inventory survives travel")
}

func TestState_RetreatAtRoot(t *testing.T) {
	s := New(world.Pos{}, nil)
	if _, ok := s.Retreat(); ok {
		t.Error("expected Retreat to fail on an empty path")
	}
}

func TestState_Clone(t *testing.T) {
	ev, open := chestEvent(t)
	s := New(world.Pos{}, []world.Item{key})
	s.Arrive(ev)
	s.Enter()
	s.Descend(world.Simple("open"), open)

	c := s.Clone()
	c.Inventory[0].Name = "changed"
	c.Path[0] = world.Simple("other")
	c.Leave()

	assert.Equal(t, "key", s.Inventory[0].Name)
	assert.Equal(t, world.Simple("open"), s.Path[0])
	assert.True(t, s.Drained(open))
	assert.Same(t, s.Event, c.Event)
}

func TestState_DescribeInventory(t *testing.T) {
	tests := []struct {
		name      string
		inventory []world.Item
		expected  string
	}{
		{"empty", nil, "You have no items."},
		{"normal", []world.Item{key}, "key"},
		{
			"weapon",
			[]world.Item{key, {ID: 2, Name: "sword", Type: world.Weapon(5)}},
			"key\nsword: 5 damage",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(world.Pos{}, tt.inventory)
			if got := s.DescribeInventory(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
