package state

import "strings"

// TravelCommand is a free-roam command.
type TravelCommand string

const (
	CmdNorth    TravelCommand = "north"
	CmdWest     TravelCommand = "west"
	CmdSouth    TravelCommand = "south"
	CmdEast     TravelCommand = "east"
	CmdInteract TravelCommand = "interact"
	CmdNone     TravelCommand = "" // Unrecognized, treated as a no-op
)

var travelCommands = map[string]TravelCommand{
	"w": CmdNorth,
	"a": CmdWest,
	"s": CmdSouth,
	"d": CmdEast,
	"f": CmdInteract,
}

// ParseTravel maps single-letter input to a travel command. Letters are
// case-insensitive; anything else returns CmdNone.
func ParseTravel(input string) TravelCommand {
	return travelCommands[strings.ToLower(input)]
}

// Delta returns the movement for a directional command.
func (c TravelCommand) Delta() (dx, dy int) {
	switch c {
	case CmdNorth:
		return 0, 1
	case CmdSouth:
		return 0, -1
	case CmdWest:
		return -1, 0
	case CmdEast:
		return 1, 0
	default:
		return 0, 0
	}
}

// IsInventory reports whether input asks for the inventory listing. Only the
// lowercase letter counts.
func IsInventory(input string) bool {
	return input == "i"
}

// IsBack reports whether input steps back one node in an event.
func IsBack(input string) bool {
	return input == "q" || input == "Q"
}

// IsChooseItem reports whether input opens the item picker in an event.
func IsChooseItem(input string) bool {
	return input == "e" || input == "E"
}
