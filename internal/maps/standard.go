// Package maps provides the embedded standard mazes, the custom map
// directory and the rule that picks a maze for each level.
package maps

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"github.com/vovakirdan/tui-pacman/internal/world"
)

//go:embed data/*.world
var standardFS embed.FS

// ArcadeMapName is the source name of the classic maze.
const ArcadeMapName = "arcade.world"

// Standard returns the embedded mazes sorted by name, each a fresh copy.
func Standard() ([]*world.Map, error) {
	entries, err := fs.ReadDir(standardFS, "data")
	if err != nil {
		return nil, fmt.Errorf("maps: read embedded maps: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)

	out := make([]*world.Map, 0, len(names))
	for _, name := range names {
		m, err := loadEmbedded(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Arcade returns the classic maze. The embedded file is part of the binary,
// so a parse error means a broken build and panics.
func Arcade() *world.Map {
	m, err := loadEmbedded(ArcadeMapName)
	if err != nil {
		panic(err)
	}
	return m
}

func loadEmbedded(name string) (*world.Map, error) {
	f, err := standardFS.Open(path.Join("data", name))
	if err != nil {
		return nil, fmt.Errorf("maps: open %s: %w", name, err)
	}
	defer f.Close()

	m, err := world.ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("maps: %s: %w", name, err)
	}
	m.Source = name
	return m, nil
}
