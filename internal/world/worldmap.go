package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// ErrMapFormat is wrapped by every parse or validation error of a map file.
var ErrMapFormat = errors.New("world: invalid map")

const (
	sectionTerrain = "#TERRAIN"
	sectionFood    = "#FOOD"
	dataMarker     = "!data"
)

// Layer is one grid section of a map with its properties.
type Layer struct {
	Props map[string]string
	Rows  [][]byte
}

func newLayer(rows, cols int) *Layer {
	l := &Layer{Props: make(map[string]string), Rows: make([][]byte, rows)}
	for i := range l.Rows {
		l.Rows[i] = make([]byte, cols)
	}
	return l
}

func (l *Layer) NumRows() int { return len(l.Rows) }

func (l *Layer) NumCols() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len(l.Rows[0])
}

// Get returns the code at (col, row) or 0 when out of bounds.
func (l *Layer) Get(t core.Vector2i) byte {
	if t.Y < 0 || t.Y >= len(l.Rows) || t.X < 0 || t.X >= len(l.Rows[t.Y]) {
		return 0
	}
	return l.Rows[t.Y][t.X]
}

// TileProp reads a tile-valued property stored as "row,col".
func (l *Layer) TileProp(name string) (core.Vector2i, bool) {
	v, ok := l.Props[name]
	if !ok {
		return core.Vector2i{}, false
	}
	t, err := ParseTile(v)
	if err != nil {
		return core.Vector2i{}, false
	}
	return t, true
}

// ParseTile parses a "row,col" tile value.
func ParseTile(s string) (core.Vector2i, error) {
	rs, cs, ok := strings.Cut(s, ",")
	if !ok {
		return core.Vector2i{}, fmt.Errorf("%w: tile %q: expected row,col", ErrMapFormat, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return core.Vector2i{}, fmt.Errorf("%w: tile %q: %v", ErrMapFormat, s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return core.Vector2i{}, fmt.Errorf("%w: tile %q: %v", ErrMapFormat, s, err)
	}
	return core.Vec2i(col, row), nil
}

// FormatTile is the inverse of ParseTile.
func FormatTile(t core.Vector2i) string {
	return fmt.Sprintf("%d,%d", t.Y, t.X)
}

// Map is a parsed world map: a terrain layer and a food layer of equal size.
type Map struct {
	Source  string
	Terrain *Layer
	Food    *Layer
}

// NewMap returns an empty map of the given size.
func NewMap(rows, cols int) *Map {
	return &Map{Terrain: newLayer(rows, cols), Food: newLayer(rows, cols)}
}

// LoadMap reads and parses a map file.
func LoadMap(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("world: open map: %w", err)
	}
	defer f.Close()

	m, err := ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("world: %s: %w", path, err)
	}
	m.Source = path
	return m, nil
}

// ParseMap parses the text map format:
//
//	#TERRAIN
//	key=value
//	!data
//	1,1,1,...
//	#FOOD
//	!data
//	0,1,2,...
//
// Blank lines are ignored. Both layers must be rectangular and have the same
// dimensions.
func ParseMap(r io.Reader) (*Map, error) {
	var (
		m       Map
		cur     *Layer
		inData  bool
		lineNum int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch line {
		case sectionTerrain, sectionFood:
			l := &Layer{Props: make(map[string]string)}
			if line == sectionTerrain {
				if m.Terrain != nil {
					return nil, fmt.Errorf("%w: line %d: duplicate section %s", ErrMapFormat, lineNum, line)
				}
				m.Terrain = l
			} else {
				if m.Food != nil {
					return nil, fmt.Errorf("%w: line %d: duplicate section %s", ErrMapFormat, lineNum, line)
				}
				m.Food = l
			}
			cur, inData = l, false
			continue
		}

		if cur == nil {
			return nil, fmt.Errorf("%w: line %d: content before first section", ErrMapFormat, lineNum)
		}

		if line == dataMarker {
			inData = true
			continue
		}

		if !inData {
			key, value, ok := strings.Cut(line, "=")
			if !ok || strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("%w: line %d: expected key=value", ErrMapFormat, lineNum)
			}
			cur.Props[strings.TrimSpace(key)] = strings.TrimSpace(value)
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMapFormat, lineNum, err)
		}
		if len(cur.Rows) > 0 && len(row) != len(cur.Rows[0]) {
			return nil, fmt.Errorf("%w: line %d: row has %d columns, expected %d",
				ErrMapFormat, lineNum, len(row), len(cur.Rows[0]))
		}
		cur.Rows = append(cur.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("world: read map: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func parseRow(line string) ([]byte, error) {
	fields := strings.Split(line, ",")
	row := make([]byte, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("column %d: %v", i, err)
		}
		row[i] = byte(v)
	}
	return row, nil
}

func (m *Map) validate() error {
	switch {
	case m.Terrain == nil:
		return fmt.Errorf("%w: missing %s section", ErrMapFormat, sectionTerrain)
	case m.Food == nil:
		return fmt.Errorf("%w: missing %s section", ErrMapFormat, sectionFood)
	case m.Terrain.NumRows() == 0:
		return fmt.Errorf("%w: empty terrain grid", ErrMapFormat)
	case m.Terrain.NumRows() != m.Food.NumRows() || m.Terrain.NumCols() != m.Food.NumCols():
		return fmt.Errorf("%w: terrain is %dx%d but food is %dx%d", ErrMapFormat,
			m.Terrain.NumCols(), m.Terrain.NumRows(), m.Food.NumCols(), m.Food.NumRows())
	}
	for y, row := range m.Terrain.Rows {
		for x, code := range row {
			if code > terrainMax {
				return fmt.Errorf("%w: terrain code 0x%02x at row %d col %d", ErrMapFormat, code, y, x)
			}
		}
	}
	for y, row := range m.Food.Rows {
		for x, code := range row {
			if code > foodMax {
				return fmt.Errorf("%w: food code 0x%02x at row %d col %d", ErrMapFormat, code, y, x)
			}
		}
	}
	return nil
}

// Serialize writes m in the format read by ParseMap. Properties are written
// in sorted order so the output is stable.
func (m *Map) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeLayer(bw, sectionTerrain, m.Terrain)
	writeLayer(bw, sectionFood, m.Food)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("world: write map: %w", err)
	}
	return nil
}

func writeLayer(w *bufio.Writer, header string, l *Layer) {
	w.WriteString(header)
	w.WriteByte('\n')
	for _, k := range slices.Sorted(maps.Keys(l.Props)) {
		fmt.Fprintf(w, "%s=%s\n", k, l.Props[k])
	}
	w.WriteString(dataMarker)
	w.WriteByte('\n')
	for _, row := range l.Rows {
		for i, code := range row {
			if i > 0 {
				w.WriteByte(',')
			}
			w.WriteString(strconv.Itoa(int(code)))
		}
		w.WriteByte('\n')
	}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	return &Map{Source: m.Source, Terrain: m.Terrain.clone(), Food: m.Food.clone()}
}

func (l *Layer) clone() *Layer {
	c := &Layer{Props: maps.Clone(l.Props), Rows: make([][]byte, len(l.Rows))}
	for i, row := range l.Rows {
		c.Rows[i] = slices.Clone(row)
	}
	return c
}
