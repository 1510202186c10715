package world

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoSuchBranch is returned when an action has no edge at its point in a path.
	ErrNoSuchBranch = errors.New("no such branch")
	// ErrDuplicateEdge is returned when a node already has an edge for an action.
	ErrDuplicateEdge = errors.New("duplicate branch")
	// ErrUnknownNode is returned for a NodeID that is not in the tree.
	ErrUnknownNode = errors.New("unknown node")
)

// NodeID addresses a node inside one Tree.
type NodeID int

// Root is the NodeID of every tree's root node.
const Root NodeID = 0

// Node is the payload of a tree node: the text shown while the player stands
// on it and the items handed over when it is first entered.
type Node struct {
	Text  string `json:"text"`
	Items []Item `json:"items,omitempty"`
}

// Tree is an event's decision tree stored as an arena. Nodes are addressed by
// NodeID and each node maps actions to child ids. A Tree is built once at load
// time and only read afterwards.
type Tree struct {
	nodes    []Node
	children []map[Action]NodeID
}

// NewTree creates a tree holding only its root.
func NewTree(root Node) *Tree {
	t := &Tree{}
	t.add(root)
	return t
}

func (t *Tree) add(n Node) NodeID {
	n.Items = slices.Clone(n.Items)
	t.nodes = append(t.nodes, n)
	t.children = append(t.children, nil)
	return NodeID(len(t.nodes) - 1)
}

// AddChild attaches node below parent on the given action.
func (t *Tree) AddChild(parent NodeID, on Action, node Node) (NodeID, error) {
	if !t.has(parent) {
		return 0, fmt.Errorf("parent %d: %w", parent, ErrUnknownNode)
	}
	if _, ok := t.children[parent][on]; ok {
		return 0, fmt.Errorf("node %d, action %s: %w", parent, on, ErrDuplicateEdge)
	}
	id := t.add(node)
	if t.children[parent] == nil {
		t.children[parent] = make(map[Action]NodeID)
	}
	t.children[parent][on] = id
	return id, nil
}

func (t *Tree) has(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a copy of the node payload. The tree's own item list is never
// handed out.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.has(id) {
		return Node{}, false
	}
	n := t.nodes[id]
	n.Items = slices.Clone(n.Items)
	return n, true
}

// Child follows one edge.
func (t *Tree) Child(id NodeID, on Action) (NodeID, bool) {
	if !t.has(id) {
		return 0, false
	}
	next, ok := t.children[id][on]
	return next, ok
}

// Actions lists the outgoing edges of a node in a stable order.
func (t *Tree) Actions(id NodeID) []Action {
	if !t.has(id) {
		return nil
	}
	actions := make([]Action, 0, len(t.children[id]))
	for a := range t.children[id] {
		actions = append(actions, a)
	}
	slices.SortFunc(actions, compareActions)
	return actions
}

// Resolve replays path from the root and returns the node it ends on.
func (t *Tree) Resolve(path []Action) (NodeID, error) {
	cur := Root
	for i, a := range path {
		next, ok := t.Child(cur, a)
		if !ok {
			return 0, fmt.Errorf("step %d, action %s: %w", i, a, ErrNoSuchBranch)
		}
		cur = next
	}
	return cur, nil
}

// Walk visits every node depth first in Actions order, passing the path that
// reaches it. The path slice is only valid for the duration of the call.
func (t *Tree) Walk(fn func(id NodeID, n Node, path []Action)) {
	var visit func(id NodeID, path []Action)
	visit = func(id NodeID, path []Action) {
		n, _ := t.Node(id)
		fn(id, n, path)
		for _, a := range t.Actions(id) {
			visit(t.children[id][a], append(path, a))
		}
	}
	visit(Root, nil)
}
