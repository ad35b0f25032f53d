package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/world"
)

// Visual characters for rendering
const (
	PelletChar    = '·'
	EnergizerChar = '●'
	WallChar      = '█'
	DoorChar      = '─'
	GhostChar     = 'Ω'
	EyesChar      = '"'
	BonusChar     = '◆'
	PacClosedChar = '●'
	PacDeadChar   = '*'
)

// pacOpen holds the open-mouth glyph per move direction.
var pacOpen = map[core.Direction]rune{
	core.DirRight: '◐',
	core.DirLeft:  '◑',
	core.DirUp:    '◒',
	core.DirDown:  '◓',
}

var bonusColors = [...]core.Color{
	actor.Cherries:   core.ColorRed,
	actor.Strawberry: core.ColorRed,
	actor.Peach:      core.ColorPeach,
	actor.Apple:      core.ColorRed,
	actor.Grapes:     core.ColorGreen,
	actor.Galaxian:   core.ColorYellow,
	actor.Bell:       core.ColorYellow,
	actor.Key:        core.ColorCyan,
}

// ticks per half period of blinking energizers and flashing ghosts
const (
	blinkTicks = 10
	flashTicks = 14
)

// viewport maps maze tiles to screen cells.
type viewport struct {
	ox, oy   int // screen position of tile (0, firstRow)
	cw       int // screen cells per tile column
	firstRow int
	lastRow  int
	cols     int
}

func (v viewport) cell(t core.Vector2i) (x, y int, ok bool) {
	if t.Y < v.firstRow || t.Y > v.lastRow || t.X < 0 || t.X >= v.cols {
		return 0, 0, false
	}
	return v.ox + t.X*v.cw, v.oy + t.Y - v.firstRow, true
}

func (v viewport) centerX() int { return v.ox + v.cols*v.cw/2 }

// newViewport fits w into the screen, dropping the empty rows at the top
// and bottom of the maze. ok is false when the screen is too small.
func newViewport(w *world.World, dst *core.Screen) (v viewport, need string, ok bool) {
	first, last := -1, -1
	for y := 0; y < w.NumRows(); y++ {
		for x := 0; x < w.NumCols(); x++ {
			t := core.Vec2i(x, y)
			if w.Terrain(t) != world.TerrainEmpty || w.HasFoodAt(t) || w.HasEatenFoodAt(t) {
				if first < 0 {
					first = y
				}
				last = y
				break
			}
		}
	}
	if first < 0 {
		first, last = 0, w.NumRows()-1
	}
	v = viewport{firstRow: first, lastRow: last, cols: w.NumCols(), cw: 1, oy: 1}
	rows := last - first + 1
	if dst.Height() < rows+2 || dst.Width() < v.cols {
		return v, fmt.Sprintf("%dx%d", v.cols*2, rows+2), false
	}
	if dst.Width() >= 2*v.cols {
		v.cw = 2
	}
	v.ox = (dst.Width() - v.cols*v.cw) / 2
	return v, "", true
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	c := g.ctrl
	switch c.State() {
	case game.Boot, game.Intro:
		g.drawIntro(dst)
	case game.SettingOptions:
		g.drawOptions(dst)
	case game.Intermission, game.TestingCutScenes:
		g.drawHUD(dst, dst.Height()-1)
		g.drawCutScene(dst)
	default:
		g.drawLevel(dst)
	}

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawHUD(dst *core.Screen, bottom int) {
	c := g.ctrl
	dst.DrawText(2, 0, fmt.Sprintf("1UP %7d", c.Score().Points), core.ColorWhite)
	hs := fmt.Sprintf("HIGH SCORE %7d", c.HighScore().Points)
	dst.DrawText(dst.Width()-len(hs)-2, 0, hs, core.ColorWhite)

	if !c.Playing() {
		dst.DrawText(2, bottom, fmt.Sprintf("CREDIT %2d", c.Credits()), core.ColorWhite)
		return
	}
	for i := 0; i < c.Lives()-1 && i < 5; i++ {
		dst.SetColored(2+2*i, bottom, pacOpen[core.DirLeft], core.ColorYellow)
	}
	if lvl := c.Level(); lvl != nil {
		x := dst.Width() - 3
		for n := lvl.Number; n >= 1 && n > lvl.Number-7; n-- {
			sym := game.ArcadeLevel(n).BonusSymbol
			dst.SetColored(x, bottom, BonusChar, bonusColors[sym])
			x -= 2
		}
	}
}

func (g *Game) drawIntro(dst *core.Screen) {
	c := g.ctrl
	g.drawHUD(dst, dst.Height()-1)

	ticks := c.StateTimer().Ticks()
	y := 3
	dst.DrawTextCentered(y, strings.ToUpper(g.variant.Title), core.ColorYellow)
	y += 2
	dst.DrawTextCentered(y, "CHARACTER  /  NICKNAME", core.ColorWhite)
	y += 2
	nicknames := [4]string{"SHADOW", "SPEEDY", "BASHFUL", "POKEY"}
	for i, p := range actor.Personalities {
		if ticks < int64(i+1)*30 {
			break
		}
		line := fmt.Sprintf("%c  -%-8s \"%s\"", GhostChar, nicknames[i], strings.ToUpper(p.ArcadeName()))
		dst.DrawTextCentered(y+i, line, p.Color())
	}
	y += 5
	if ticks >= 150 {
		dst.DrawTextCentered(y, fmt.Sprintf("%c 10 PTS", PelletChar), core.ColorPeach)
		dst.DrawTextCentered(y+1, fmt.Sprintf("%c 50 PTS", EnergizerChar), core.ColorPeach)
	}
	y += 3
	if c.Credits() > 0 {
		dst.DrawTextCentered(y, "PUSH START BUTTON", core.ColorOrange)
	} else {
		dst.DrawTextCentered(y, "INSERT COIN (5)", core.ColorOrange)
	}
	if g.variant.HasOptions {
		dst.DrawTextCentered(y+2, "TAB  OPTIONS", core.ColorGray)
	}
}

func (g *Game) drawOptions(dst *core.Screen) {
	c := g.ctrl
	g.drawHUD(dst, dst.Height()-1)

	y := dst.Height()/2 - 3
	dst.DrawTextCentered(y, strings.ToUpper(g.variant.Title), core.ColorYellow)
	dst.DrawTextCentered(y+2, "MAP SELECTION", core.ColorWhite)
	dst.DrawTextCentered(y+3, strings.ToUpper(c.MapSelection().String()), core.ColorCyan)
	dst.DrawTextCentered(y+5, "TAB  CHANGE    ENTER  START", core.ColorGray)
}

func (g *Game) drawCutScene(dst *core.Screen) {
	c := g.ctrl
	y := dst.Height() / 2
	dst.DrawTextCentered(y-3, fmt.Sprintf("INTERMISSION %d", c.CutScene()), core.ColorWhite)

	// Pac flees across the screen with red in pursuit.
	w := dst.Width()
	ticks := int(c.StateTimer().Ticks())
	px := w - ticks/3%(w+8)
	dst.SetColored(px, y, pacOpen[core.DirLeft], core.ColorYellow)
	dst.SetColored(px+4, y, GhostChar, actor.Red.Color())
}

func (g *Game) drawLevel(dst *core.Screen) {
	c := g.ctrl
	lvl := c.Level()
	g.drawHUD(dst, dst.Height()-1)
	if lvl == nil {
		return
	}

	v, need, ok := newViewport(lvl.World, dst)
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small: need "+need, core.ColorWhite)
		return
	}

	state := c.State()
	ticks := c.StateTimer().Ticks()
	g.drawMaze(dst, v, lvl, state == game.LevelComplete && ticks/12%2 == 1)
	g.drawFood(dst, v, lvl, state == game.Hunting && c.Tick()/blinkTicks%2 == 1)
	g.drawBonus(dst, v, lvl.Bonus)

	pacVisible := state != game.GhostDying
	ghostsVisible := state != game.LevelComplete && !(state == game.PacDying && ticks >= 60)
	if ghostsVisible {
		for _, gh := range lvl.Ghosts {
			g.drawGhost(dst, v, lvl, gh)
		}
	}
	if pacVisible {
		g.drawPac(dst, v, lvl.Pac)
	}

	msgRow := lvl.World.House().MaxTile().Y + 1
	if _, my, ok := v.cell(core.Vec2i(0, msgRow)); ok {
		switch {
		case lvl.Demo || state == game.GameOver:
			drawCentered(dst, v.centerX(), my, "GAME  OVER", core.ColorRed)
		case state == game.Ready:
			drawCentered(dst, v.centerX(), my, "READY!", core.ColorYellow)
		case state == game.TestingLevels:
			drawCentered(dst, v.centerX(), my, fmt.Sprintf("TEST L%03d", lvl.Number), core.ColorWhite)
		}
	}
}

func (g *Game) drawMaze(dst *core.Screen, v viewport, lvl *game.Level, flash bool) {
	w := lvl.World
	wallColor := w.ColorProp(world.PropWallColor, core.ColorBlue)
	doorColor := w.ColorProp(world.PropDoorColor, core.ColorPink)
	if flash {
		wallColor = core.ColorWhite
	}
	for y := v.firstRow; y <= v.lastRow; y++ {
		for x := 0; x < v.cols; x++ {
			t := core.Vec2i(x, y)
			sx, sy, _ := v.cell(t)
			code := w.Terrain(t)
			switch {
			case code == world.TerrainDoor:
				fill(dst, sx, sy, v.cw, DoorChar, DoorChar, doorColor)
			case world.IsWallCode(code):
				left, right := wallGlyphs(code)
				fill(dst, sx, sy, v.cw, left, right, wallColor)
			}
		}
	}
}

// wallGlyphs returns the glyph of a wall tile and the glyph that extends
// it to the right when tiles are two cells wide.
func wallGlyphs(code byte) (rune, rune) {
	switch code {
	case world.TerrainDWallH:
		return '═', '═'
	case world.TerrainDWallV:
		return '║', ' '
	case world.TerrainDCornerNW:
		return '╔', '═'
	case world.TerrainDCornerNE:
		return '╗', ' '
	case world.TerrainDCornerSE:
		return '╝', ' '
	case world.TerrainDCornerSW:
		return '╚', '═'
	default:
		return WallChar, WallChar
	}
}

func fill(dst *core.Screen, x, y, cw int, left, right rune, c core.Color) {
	dst.SetColored(x, y, left, c)
	if cw > 1 {
		dst.SetColored(x+1, y, right, c)
	}
}

func (g *Game) drawFood(dst *core.Screen, v viewport, lvl *game.Level, hideEnergizers bool) {
	w := lvl.World
	color := w.ColorProp(world.PropFoodColor, core.ColorPeach)
	for y := v.firstRow; y <= v.lastRow; y++ {
		for x := 0; x < v.cols; x++ {
			t := core.Vec2i(x, y)
			if !w.HasFoodAt(t) {
				continue
			}
			sx, sy, _ := v.cell(t)
			if w.IsEnergizerTile(t) {
				if !hideEnergizers {
					dst.SetColored(sx, sy, EnergizerChar, color)
				}
				continue
			}
			dst.SetColored(sx, sy, PelletChar, color)
		}
	}
}

func (g *Game) drawBonus(dst *core.Screen, v viewport, b *actor.Bonus) {
	sx, sy, ok := v.cell(b.Tile())
	if !ok {
		return
	}
	switch b.State {
	case actor.BonusEdible:
		dst.SetColored(sx, sy, BonusChar, bonusColors[b.Symbol])
	case actor.BonusEaten:
		drawCentered(dst, sx, sy, fmt.Sprint(b.Points), core.ColorPink)
	}
}

func (g *Game) drawGhost(dst *core.Screen, v viewport, lvl *game.Level, gh *actor.Ghost) {
	sx, sy, ok := v.cell(gh.Tile())
	if !ok {
		return
	}
	switch gh.State {
	case actor.Eaten:
		drawCentered(dst, sx, sy, fmt.Sprint(game.GhostValue(gh.KilledIndex)), core.ColorCyan)
	case actor.ReturningHome:
		dst.SetColored(sx, sy, EyesChar, core.ColorWhite)
	case actor.Frightened:
		dst.SetColored(sx, sy, GhostChar, frightenedColor(lvl, g.ctrl.Tick()))
	default:
		dst.SetColored(sx, sy, GhostChar, gh.ID.Color())
	}
}

// frightenedColor flashes white during the last flashes of the power time.
func frightenedColor(lvl *game.Level, tick int64) core.Color {
	remaining := lvl.Pac.Power.Remaining()
	if remaining <= int64(lvl.Data.NumFlashes)*2*flashTicks && tick/flashTicks%2 == 0 {
		return core.ColorWhite
	}
	return core.ColorBrightBlue
}

func (g *Game) drawPac(dst *core.Screen, v viewport, p *actor.Pac) {
	sx, sy, ok := v.cell(p.Tile())
	if !ok {
		return
	}
	glyph := PacClosedChar
	switch {
	case p.Dead:
		if g.ctrl.StateTimer().Ticks() >= 60 {
			glyph = PacDeadChar
		}
	case !p.Stuck && g.ctrl.Tick()/4%2 == 0:
		if r, ok := pacOpen[p.MoveDir]; ok {
			glyph = r
		}
	}
	dst.SetColored(sx, sy, glyph, core.ColorYellow)
}

// drawCentered writes text centered on column x.
func drawCentered(dst *core.Screen, x, y int, text string, c core.Color) {
	dst.DrawText(x-len([]rune(text))/2, y, text, c)
}

// drawCenteredMessage draws a message over the middle of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	h := dst.Height()
	w := max(len(title), len(subtitle)) + 4
	y := h/2 - 2
	blank := strings.Repeat(" ", w)
	for i := 0; i < 5; i++ {
		dst.DrawTextCentered(y+i, blank, core.ColorDefault)
	}
	dst.DrawTextCentered(y+1, title, core.ColorYellow)
	dst.DrawTextCentered(y+3, subtitle, core.ColorWhite)
}
