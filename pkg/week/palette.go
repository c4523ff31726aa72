package week

// RoleColor is one of the eight palette colors a role can carry.
type RoleColor string

const (
	Teal    RoleColor = "teal"
	Amber   RoleColor = "amber"
	Rose    RoleColor = "rose"
	Violet  RoleColor = "violet"
	Emerald RoleColor = "emerald"
	Orange  RoleColor = "orange"
	Sky     RoleColor = "sky"
	Fuchsia RoleColor = "fuchsia"
)

// Palette is the assignment order for new roles. Colors repeat after eight roles.
var Palette = [...]RoleColor{Teal, Amber, Rose, Violet, Emerald, Orange, Sky, Fuchsia}

// ColorForIndex returns the palette color for the n-th role (zero based).
func ColorForIndex(n int) RoleColor {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// Valid reports whether c is a palette color.
func (c RoleColor) Valid() bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}
