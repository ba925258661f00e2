package candles

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/candle-jumper/internal/core"
)

// Visual characters for rendering
const (
	BodyChar     = '█'
	WickChar     = '│'
	PlatformChar = '▀'
	BarFull      = '█'
	BarEmpty     = '░'
	ChargeFull   = '●'
	ChargeEmpty  = '○'
)

// Player sprite, three cells wide.
const (
	spriteGrounded = "(@)"
	spriteAirborne = "\\@/"
)

// Price axis labels, drawn only on screens at least this wide.
const (
	axisMinWidth = 48
	axisWidth    = 8
	axisSteps    = 5
)

// view maps world units to screen cells for one frame.
type view struct {
	cellW, cellH float64
	cameraY      float64
	area         core.Rect // Play area in cells
}

func (v view) col(x float64) int {
	return int(math.Floor(x / v.cellW))
}

func (v view) row(y float64) int {
	return v.area.Y + int(math.Floor((y-v.cameraY)/v.cellH))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	v := view{
		cellW:   g.cfg.Display.CellWidth,
		cellH:   g.cfg.Display.CellHeight,
		cameraY: g.engine.Camera().Y,
		area:    core.NewRect(0, 1, dst.Width(), max(dst.Height()-hudRows, 1)),
	}

	if dst.Width() >= axisMinWidth {
		g.drawPriceAxis(dst, v)
	}
	for _, c := range g.engine.Obstacles() {
		g.drawCandle(dst, v, c)
	}
	g.drawPlatform(dst, v)
	g.drawPlayer(dst, v)
	g.drawPopups(dst, v)

	g.drawHUD(dst)
	g.drawProgressBar(dst)

	switch g.engine.Phase() {
	case PhaseNotStarted:
		g.drawCenteredMessage(dst, g.Title(), "SPACE to start  |  SPACE to jump (x3)")
	case PhaseVictory:
		g.drawCenteredMessage(dst, "LEVEL COMPLETE", fmt.Sprintf("Earned %s  |  Press R to restart", g.engine.RewardText()))
	case PhaseDefeat:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.engine.Score()))
	default:
		if g.paused {
			g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
		}
	}
}

// inPlay reports whether row is inside the play area.
func (v view) inPlay(row int) bool {
	return row >= v.area.Y && row < v.area.Bottom()
}

// clipRows limits the row span [from, to] to the play area. The span is
// empty when to < from.
func (v view) clipRows(from, to int) (int, int) {
	return core.Clamp(from, v.area.Y, v.area.Bottom()), core.Clamp(to, v.area.Y-1, v.area.Bottom()-1)
}

// drawCandle renders a body with its capped wicks.
func (g *Game) drawCandle(dst *core.Screen, v view, c Candle) {
	color := core.Bullish(c.Bullish, c.Outlier)
	left := v.col(c.X)
	right := v.col(math.Nextafter(c.Right(), c.X))
	mid := v.col(c.X + c.Width/2)

	wickCap := g.cfg.Terrain.WickCap
	wickTop := v.row(c.WickTop(wickCap))
	bodyTop := v.row(c.BodyTop())
	bodyBottom := max(v.row(c.BodyBottom()), bodyTop)
	wickBottom := max(v.row(c.WickBottom(wickCap)), bodyBottom)

	span := core.NewRect(left, wickTop, right-left+1, wickBottom-wickTop+1)
	if !span.Intersects(v.area) {
		return
	}

	if from, to := v.clipRows(wickTop, bodyTop-1); to >= from {
		dst.DrawVLine(mid, from, to-from+1, WickChar, color)
	}
	if from, to := v.clipRows(bodyBottom+1, wickBottom); to >= from {
		dst.DrawVLine(mid, from, to-from+1, WickChar, color)
	}
	if from, to := v.clipRows(bodyTop, bodyBottom); to >= from {
		dst.DrawRectColor(core.NewRect(left, from, right-left+1, to-from+1), BodyChar, color)
	}
}

// drawPlatform renders the start ledge while it is visible.
func (g *Game) drawPlatform(dst *core.Screen, v view) {
	p := g.engine.Platform()
	if !p.Visible {
		return
	}
	y := v.row(p.Y)
	if !v.inPlay(y) {
		return
	}
	left := v.col(p.X)
	dst.DrawHLine(left, y, v.col(math.Nextafter(p.Right(), p.X))-left+1, PlatformChar, core.ColorGold)
}

// drawPlayer renders the sprite one row above the surface it stands on.
func (g *Game) drawPlayer(dst *core.Screen, v view) {
	p := g.engine.Player()
	sprite := spriteGrounded
	if !p.OnGround {
		sprite = spriteAirborne
	}
	x, y := v.col(p.X), v.row(p.Bottom())-1
	if !v.area.Contains(x, y) {
		return
	}
	dst.DrawTextColor(x-len(sprite)/2, y, sprite, core.ColorCoral)
}

// drawPopups renders floating reward labels.
func (g *Game) drawPopups(dst *core.Screen, v view) {
	for _, p := range g.popups {
		x, y := v.col(p.x)+2, v.row(p.y)-1
		if !v.area.Contains(x, y) {
			continue
		}
		color := core.ColorGold
		if p.ttl < popupTTL/3 {
			color = core.ColorDarkGray
		}
		dst.DrawTextColor(x, y, p.text, color)
	}
}

// drawPriceAxis labels the right edge with the run's price range, highest
// price first. Prices are heights above the world floor.
func (g *Game) drawPriceAxis(dst *core.Screen, v view) {
	lo, hi, ok := g.engine.PriceRange()
	if !ok {
		return
	}
	_, worldH := g.engine.Viewport()
	x := dst.Width() - axisWidth
	for i := 0; i < axisSteps; i++ {
		frac := float64(i) / float64(axisSteps-1)
		y := v.area.Y + int(frac*float64(v.area.H-1))
		price := lo + frac*(hi-lo)
		label := fmt.Sprintf("%*.1f", axisWidth-1, worldH-price)
		dst.DrawTextColor(x, y, label, core.ColorDarkGray)
	}
}

// drawHUD renders reward, score, jump charges and speed on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	e := g.engine
	reward := " " + e.RewardText() + " "
	dst.DrawTextColor(1, 0, reward, core.ColorGold)

	score := fmt.Sprintf(" Score: %d/%d ", e.Score(), g.cfg.Level.Length)
	if g.endless {
		score = fmt.Sprintf(" Score: %d ", e.Score())
	}
	x := len([]rune(reward)) + 2
	dst.DrawText(x, 0, score)
	x += len(score)

	p := e.Player()
	var charges strings.Builder
	for i := 0; i < p.MaxJumps; i++ {
		if i < p.MaxJumps-p.JumpCount {
			charges.WriteRune(ChargeFull)
		} else {
			charges.WriteRune(ChargeEmpty)
		}
	}
	dst.DrawTextColor(x+1, 0, charges.String(), core.ColorCyan)

	speed := fmt.Sprintf(" Spd: %.1f ", e.Speed())
	dst.DrawText(dst.Width()-len(speed)-1, 0, speed)
}

// drawProgressBar renders level completion on the bottom row.
func (g *Game) drawProgressBar(dst *core.Screen) {
	y := dst.Height() - 1
	if g.endless {
		dst.DrawTextCentered(y, fmt.Sprintf("ENDLESS  %d candles passed", g.engine.Score()))
		return
	}

	progress := g.engine.Progress()
	label := fmt.Sprintf(" %3.0f%%", progress*100)
	width := max(dst.Width()-len(label)-2, 0)
	filled := core.Clamp(int(progress*float64(width)), 0, width)
	dst.DrawHLine(1, y, filled, BarFull, core.ColorGreen)
	dst.DrawHLine(1+filled, y, width-filled, BarEmpty, core.ColorDarkGray)
	dst.DrawText(1+width, y, label)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	cx, cy := box.Center()
	dst.DrawText(cx-len([]rune(title))/2, cy-1, title)
	dst.DrawText(cx-len([]rune(subtitle))/2, cy+1, subtitle)
}
