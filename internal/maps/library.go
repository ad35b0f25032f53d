package maps

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/world"
)

// FileExt is the extension of map files in the custom map directory.
const FileExt = ".world"

// SelectionMode decides which maze a level is played on.
type SelectionMode int

const (
	// NoCustomMaps plays the standard mazes in order, then random ones.
	NoCustomMaps SelectionMode = iota
	// CustomMapsFirst plays the custom mazes sorted by name, then the
	// standard mazes, then random ones from both.
	CustomMapsFirst
	// AllRandom picks uniformly from custom and standard mazes.
	AllRandom
)

var modeNames = map[SelectionMode]string{
	NoCustomMaps:    "no_custom_maps",
	CustomMapsFirst: "custom_maps_first",
	AllRandom:       "all_random",
}

func (m SelectionMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("SelectionMode(%d)", int(m))
}

// ParseSelectionMode parses the configuration name of a mode.
func ParseSelectionMode(s string) (SelectionMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return NoCustomMaps, fmt.Errorf("maps: unknown selection mode %q", s)
}

// Next cycles through the modes.
func (m SelectionMode) Next() SelectionMode {
	return (m + 1) % SelectionMode(len(modeNames))
}

// Library holds the standard and custom mazes.
type Library struct {
	logger   *log.Logger
	dir      string
	standard []*world.Map
	custom   []*world.Map
	stale    atomic.Bool
}

// NewLibrary loads the standard mazes and the custom mazes found in dir.
// An empty dir disables custom mazes.
func NewLibrary(dir string, logger *log.Logger) (*Library, error) {
	if logger == nil {
		logger = log.Default()
	}
	std, err := Standard()
	if err != nil {
		return nil, err
	}
	l := &Library{logger: logger, dir: expandHome(dir), standard: std}
	l.ReloadCustom()
	return l, nil
}

// Dir returns the custom map directory.
func (l *Library) Dir() string { return l.dir }

// StandardMaps returns the standard mazes.
func (l *Library) StandardMaps() []*world.Map { return l.standard }

// CustomMaps returns the custom mazes sorted by source name.
func (l *Library) CustomMaps() []*world.Map {
	if l.stale.Swap(false) {
		l.ReloadCustom()
	}
	return l.custom
}

// MarkStale makes the next access reload the custom directory.
func (l *Library) MarkStale() { l.stale.Store(true) }

// ReloadCustom rereads the custom map directory, creating it when missing.
// Problems are logged; unreadable directories yield no custom maps and
// broken files are skipped.
func (l *Library) ReloadCustom() {
	l.custom = nil
	if l.dir == "" {
		return
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		l.logger.Warn("cannot create custom map directory", "dir", l.dir, "err", err)
		return
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		l.logger.Warn("cannot read custom map directory", "dir", l.dir, "err", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), FileExt) {
			continue
		}
		m, err := world.LoadMap(filepath.Join(l.dir, e.Name()))
		if err != nil {
			l.logger.Warn("skipping custom map", "file", e.Name(), "err", err)
			continue
		}
		l.custom = append(l.custom, m)
	}
	slices.SortFunc(l.custom, func(a, b *world.Map) int { return strings.Compare(a.Source, b.Source) })
	l.logger.Debug("custom maps loaded", "dir", l.dir, "count", len(l.custom))
}

// Select returns the maze for the given level. The returned map is a copy
// the caller may keep.
func (l *Library) Select(mode SelectionMode, levelNumber int, rng *rand.Rand) *world.Map {
	var pool []*world.Map
	switch mode {
	case CustomMapsFirst, AllRandom:
		pool = append(slices.Clone(l.CustomMaps()), l.standard...)
	default:
		pool = l.standard
	}
	if mode != AllRandom && levelNumber >= 1 && levelNumber <= len(pool) {
		return pool[levelNumber-1].Clone()
	}
	return pool[rng.Intn(len(pool))].Clone()
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
