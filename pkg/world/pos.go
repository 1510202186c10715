package world

import "fmt"

// MaxCoord bounds the playable grid on both axes: [-MaxCoord, MaxCoord].
const MaxCoord = 3

// Pos is a tile on the grid. It is the only key into a World's events.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bound clamps both coordinates to [-limit, limit].
func (p Pos) Bound(limit int) Pos {
	return Pos{
		X: clamp(p.X, -limit, limit),
		Y: clamp(p.Y, -limit, limit),
	}
}

// InBounds reports whether p lies on the playable grid.
func (p Pos) InBounds() bool {
	return p == p.Bound(MaxCoord)
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
