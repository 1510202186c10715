package world

import (
	"cmp"
	"fmt"
)

// ActionKind discriminates Action.
type ActionKind int

const (
	ActionContinue ActionKind = iota
	ActionSimple
	ActionUseItem
)

// Action labels an edge in an event tree. It is comparable and used as a map
// key, so only the field belonging to Kind may be set.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Command string     `json:"command,omitempty"` // ActionSimple
	ItemID  uint16     `json:"item_id,omitempty"` // ActionUseItem
}

func Continue() Action {
	return Action{Kind: ActionContinue}
}

func Simple(command string) Action {
	return Action{Kind: ActionSimple, Command: command}
}

// UseItem refers to an item by id, never by value.
func UseItem(id uint16) Action {
	return Action{Kind: ActionUseItem, ItemID: id}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionContinue:
		return "continue"
	case ActionSimple:
		return fmt.Sprintf("%q", a.Command)
	case ActionUseItem:
		return fmt.Sprintf("use #%d", a.ItemID)
	default:
		return fmt.Sprintf("Action(%d)", int(a.Kind))
	}
}

// compareActions orders actions by kind, then payload.
func compareActions(a, b Action) int {
	return cmp.Or(
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Command, b.Command),
		cmp.Compare(a.ItemID, b.ItemID),
	)
}
