package worlddoc

import (
	"fmt"

	"github.com/jwebster45206/exploration/pkg/state"
	"github.com/jwebster45206/exploration/pkg/world"
)

// Warnings lists problems that do not stop a world from loading but make part
// of it unplayable: events the player can never reach, branches that need an
// item nobody hands out, and branches no input can choose.
func Warnings(w *world.World, start *state.State) []string {
	granted := make(map[uint16]bool)
	for _, it := range start.Inventory {
		granted[it.ID] = true
	}
	for _, pos := range w.Positions() {
		w.EventAt(pos).Tree.Walk(func(_ world.NodeID, n world.Node, _ []world.Action) {
			for _, it := range n.Items {
				granted[it.ID] = true
			}
		})
	}

	var warnings []string
	for _, pos := range w.Positions() {
		if !pos.InBounds() {
			warnings = append(warnings, fmt.Sprintf("event at %s is outside the grid and can never be reached", pos))
		}
		w.EventAt(pos).Tree.Walk(func(_ world.NodeID, _ world.Node, path []world.Action) {
			if len(path) == 0 {
				return
			}
			last := path[len(path)-1]
			switch last.Kind {
			case world.ActionUseItem:
				if !granted[last.ItemID] {
					warnings = append(warnings, fmt.Sprintf("event at %s: branch %v needs item %d, which is never granted", pos, path, last.ItemID))
				}
			case world.ActionContinue:
				warnings = append(warnings, fmt.Sprintf("event at %s: branch %v is a continue branch, which no input selects", pos, path))
			case world.ActionSimple:
				if state.IsBack(last.Command) || state.IsChooseItem(last.Command) {
					warnings = append(warnings, fmt.Sprintf("event at %s: branch %v is shadowed by a built-in command", pos, path))
				}
			}
		})
	}
	return warnings
}
