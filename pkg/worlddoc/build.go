package worlddoc

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/exploration/pkg/state"
	"github.com/jwebster45206/exploration/pkg/world"
)

// ErrMissingField is wrapped by every error about an absent required field.
var ErrMissingField = errors.New("missing required field")

// Build turns a decoded document into a World and the opening State. It
// fails on the first problem; no partial world is returned.
func Build(doc *Document) (*world.World, *state.State, error) {
	start := world.Pos{}
	var inventory []world.Item
	if doc.Start != nil {
		start = world.Pos{X: doc.Start.X, Y: doc.Start.Y}
		if !start.InBounds() {
			return nil, nil, fmt.Errorf("start %s is outside the grid", start)
		}
		for i, d := range doc.Start.Inventory {
			it, err := buildItem(d)
			if err != nil {
				return nil, nil, fmt.Errorf("start.inventory[%d]: %w", i, err)
			}
			inventory = append(inventory, it)
		}
	}

	w := world.NewWorld()
	for i, ed := range doc.Events {
		pos, ev, err := buildEvent(ed)
		if err != nil {
			return nil, nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		if err := w.AddEvent(pos, ev); err != nil {
			return nil, nil, fmt.Errorf("events[%d]: %w", i, err)
		}
	}
	return w, state.New(start, inventory), nil
}

func buildEvent(d EventDoc) (world.Pos, *world.Event, error) {
	switch {
	case d.X == nil:
		return world.Pos{}, nil, fmt.Errorf("%w: x", ErrMissingField)
	case d.Y == nil:
		return world.Pos{}, nil, fmt.Errorf("%w: y", ErrMissingField)
	case d.Preview == nil:
		return world.Pos{}, nil, fmt.Errorf("%w: preview", ErrMissingField)
	case d.Tree == nil:
		return world.Pos{}, nil, fmt.Errorf("%w: tree", ErrMissingField)
	}

	root, err := buildNode(*d.Tree)
	if err != nil {
		return world.Pos{}, nil, fmt.Errorf("tree: %w", err)
	}
	tree := world.NewTree(root)
	if err := addBranches(tree, world.Root, d.Tree.Branches, "tree"); err != nil {
		return world.Pos{}, nil, err
	}
	return world.Pos{X: *d.X, Y: *d.Y}, &world.Event{Preview: *d.Preview, Tree: tree}, nil
}

func addBranches(tree *world.Tree, parent world.NodeID, branches []TreeDoc, where string) error {
	for i, b := range branches {
		at := fmt.Sprintf("%s.branches[%d]", where, i)
		on, err := branchAction(b)
		if err != nil {
			return fmt.Errorf("%s: %w", at, err)
		}
		node, err := buildNode(b)
		if err != nil {
			return fmt.Errorf("%s: %w", at, err)
		}
		id, err := tree.AddChild(parent, on, node)
		if err != nil {
			return fmt.Errorf("%s: %w", at, err)
		}
		if err := addBranches(tree, id, b.Branches, at); err != nil {
			return err
		}
	}
	return nil
}

func branchAction(b TreeDoc) (world.Action, error) {
	switch {
	case b.On != nil && b.Continue:
		return world.Action{}, errors.New("branch sets both on and continue")
	case b.On != nil:
		return b.On.Action, nil
	case b.Continue:
		return world.Continue(), nil
	default:
		return world.Action{}, fmt.Errorf("%w: on", ErrMissingField)
	}
}

func buildNode(d TreeDoc) (world.Node, error) {
	n := world.Node{Text: d.Text}
	for i, id := range d.Items {
		it, err := buildItem(id)
		if err != nil {
			return world.Node{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		n.Items = append(n.Items, it)
	}
	return n, nil
}

func buildItem(d ItemDoc) (world.Item, error) {
	switch {
	case d.ID == nil:
		return world.Item{}, fmt.Errorf("%w: id", ErrMissingField)
	case d.Name == nil:
		return world.Item{}, fmt.Errorf("%w: name", ErrMissingField)
	case d.Type == nil:
		return world.Item{}, fmt.Errorf("%w: type", ErrMissingField)
	}

	it := world.Item{ID: *d.ID, Name: *d.Name}
	switch *d.Type {
	case "N":
		it.Type = world.Normal()
	case "W":
		if d.Damage == nil {
			return world.Item{}, fmt.Errorf("%w: damage", ErrMissingField)
		}
		it.Type = world.Weapon(*d.Damage)
	default:
		return world.Item{}, fmt.Errorf("unknown item type %q", *d.Type)
	}
	return it, nil
}
