package world

import "fmt"

// ItemKind discriminates ItemType.
type ItemKind int

const (
	ItemNormal ItemKind = iota
	ItemWeapon
)

func (k ItemKind) String() string {
	switch k {
	case ItemNormal:
		return "normal"
	case ItemWeapon:
		return "weapon"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// ItemType is either Normal or Weapon. Damage is only meaningful for weapons.
type ItemType struct {
	Kind   ItemKind `json:"kind"`
	Damage uint16   `json:"damage,omitempty"`
}

func Normal() ItemType {
	return ItemType{Kind: ItemNormal}
}

func Weapon(damage uint16) ItemType {
	return ItemType{Kind: ItemWeapon, Damage: damage}
}

// Item is something the player can carry. Items are plain values: two items
// with the same ID, Name and Type are interchangeable.
type Item struct {
	ID   uint16   `json:"id"`
	Name string   `json:"name"`
	Type ItemType `json:"type"`
}

// Describe renders the item for an inventory listing.
func (it Item) Describe() string {
	switch it.Type.Kind {
	case ItemWeapon:
		return fmt.Sprintf("%s: %d damage", it.Name, it.Type.Damage)
	default:
		return it.Name
	}
}
