package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorld_AddAndLookup(t *testing.T) {
	w := NewWorld()
	ev := &Event{Preview: "There is a guy", Tree: guyTree(t)}
	require.NoError(t, w.AddEvent(Pos{1, 0}, ev))

	assert.Same(t, ev, w.EventAt(Pos{1, 0}))
	assert.Nil(t, w.EventAt(Pos{0, 0}))
	assert.Equal(t, 1, w.Len())

	err := w.AddEvent(Pos{1, 0}, &Event{Tree: NewTree(Node{})})
	assert.ErrorIs(t, err, ErrDuplicateEvent)

	assert.Error(t, w.AddEvent(Pos{2, 0}, &Event{Preview: "no tree"}))
}

func TestWorld_Positions(t *testing.T) {
	w := NewWorld()
	for _, p := range []Pos{{2, 1}, {-1, 1}, {0, -3}} {
		require.NoError(t, w.AddEvent(p, &Event{Tree: NewTree(Node{})}))
	}
	assert.Equal(t, []Pos{{0, -3}, {-1, 1}, {2, 1}}, w.Positions())
}
