package game

// Variant describes one flavor of the game.
type Variant struct {
	ID    string
	Title string
	// HasOptions enables the options screen shown after boot.
	HasOptions bool
	// CustomMaps lets levels use mazes beyond the arcade one.
	CustomMaps bool
}

var (
	// Arcade plays the classic maze only.
	Arcade = Variant{ID: "pacman", Title: "Pac-Man"}
	// XXL plays the standard maze pool and the user's custom mazes.
	XXL = Variant{ID: "pacman_xxl", Title: "Pac-Man XXL", HasOptions: true, CustomMaps: true}
)

// Variants lists the known variants.
func Variants() []Variant {
	return []Variant{Arcade, XXL}
}
