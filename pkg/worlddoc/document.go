package worlddoc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jwebster45206/exploration/pkg/world"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a world. Pointer fields are required; the
// builder rejects a document where any of them is missing.
type Document struct {
	Start  *StartDoc  `json:"start,omitempty" yaml:"start,omitempty"`   // Optional, defaults to (0, 0) with nothing carried
	Events []EventDoc `json:"events" yaml:"events"`
}

// StartDoc places the player and fills the opening inventory.
type StartDoc struct {
	X         int       `json:"x" yaml:"x"`
	Y         int       `json:"y" yaml:"y"`
	Inventory []ItemDoc `json:"inventory,omitempty" yaml:"inventory,omitempty"`
}

// EventDoc is one event on one tile.
type EventDoc struct {
	X       *int     `json:"x" yaml:"x"`
	Y       *int     `json:"y" yaml:"y"`
	Preview *string  `json:"preview" yaml:"preview"`
	Tree    *TreeDoc `json:"tree" yaml:"tree"`
}

// TreeDoc is a node and the branches below it. On a branch, On (or Continue)
// names the action that leads into it; on an event's root tree both are
// ignored.
type TreeDoc struct {
	On       *ActionLiteral `json:"on,omitempty" yaml:"on,omitempty"`
	Continue bool           `json:"continue,omitempty" yaml:"continue,omitempty"`
	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Items    []ItemDoc      `json:"items,omitempty" yaml:"items,omitempty"`
	Branches []TreeDoc      `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// ItemDoc declares an item. Type is "N" for normal items or "W" for weapons,
// which also need Damage.
type ItemDoc struct {
	ID     *uint16 `json:"id" yaml:"id"`
	Name   *string `json:"name" yaml:"name"`
	Type   *string `json:"type" yaml:"type"`
	Damage *uint16 `json:"damage,omitempty" yaml:"damage,omitempty"`
}

// ActionLiteral is a branch label: a string is a plain command, a bare
// integer uses the item with that id.
type ActionLiteral struct {
	world.Action
}

func (a *ActionLiteral) UnmarshalJSON(data []byte) error {
	var cmd string
	if err := json.Unmarshal(data, &cmd); err == nil {
		a.Action = world.Simple(cmd)
		return nil
	}
	var id uint16
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("action must be a string or an item id, got %s", data)
	}
	a.Action = world.UseItem(id)
	return nil
}

func (a ActionLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.literal())
}

func (a *ActionLiteral) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: action must be a string or an item id", node.Line)
	}
	switch node.ShortTag() {
	case "!!str":
		a.Action = world.Simple(node.Value)
	case "!!int":
		id, err := strconv.ParseUint(node.Value, 0, 16)
		if err != nil {
			return fmt.Errorf("line %d: invalid item id %q: %w", node.Line, node.Value, err)
		}
		a.Action = world.UseItem(uint16(id))
	default:
		return fmt.Errorf("line %d: action must be a string or an item id, got %s", node.Line, node.ShortTag())
	}
	return nil
}

func (a ActionLiteral) MarshalYAML() (any, error) {
	return a.literal(), nil
}

func (a ActionLiteral) literal() any {
	if a.Kind == world.ActionUseItem {
		return a.ItemID
	}
	return a.Command
}
