package candles

import (
	"math"
	"slices"

	"github.com/vovakirdan/candle-jumper/internal/config"
	"github.com/vovakirdan/candle-jumper/internal/core"
)

// Source is the random source used by the terrain generator and the reward
// wallet. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Candle is one candlestick segment. Coordinates are world units with y
// growing downward, so Low is the upper wick tip and High the lower one:
//
//	0 <= Low <= BodyTop <= BodyBottom <= High <= world height
type Candle struct {
	X       float64 // Left edge; decreases as the world scrolls
	Width   float64
	Open    float64
	Close   float64
	High    float64
	Low     float64
	Outlier bool
	Bullish bool
	GroupID int // 0 when the candle is not part of a group
}

// BodyTop returns the landable surface of the candle.
func (c Candle) BodyTop() float64 {
	return math.Min(c.Open, c.Close)
}

// BodyBottom returns the lower edge of the body.
func (c Candle) BodyBottom() float64 {
	return math.Max(c.Open, c.Close)
}

// Right returns the x-coordinate of the right edge.
func (c Candle) Right() float64 {
	return c.X + c.Width
}

// Body returns the solid body as a rectangle.
func (c Candle) Body() core.RectF {
	return core.RectF{X: c.X, Y: c.BodyTop(), W: c.Width, H: c.BodyBottom() - c.BodyTop()}
}

// WickTop returns the drawn upper wick tip, at most capRatio body heights above the body.
func (c Candle) WickTop(capRatio float64) float64 {
	body := c.BodyBottom() - c.BodyTop()
	return math.Max(c.Low, c.BodyTop()-body*capRatio)
}

// WickBottom returns the drawn lower wick tip, at most capRatio body heights below the body.
func (c Candle) WickBottom(capRatio float64) float64 {
	body := c.BodyBottom() - c.BodyTop()
	return math.Min(c.High, c.BodyBottom()+body*capRatio)
}

// Terrain owns the live candle window. It appends chained candles at the
// trailing edge and evicts them once they scroll past the left edge; each
// eviction advances the score by one.
type Terrain struct {
	cfg        config.TerrainConfig
	difficulty *config.DifficultyManager
	rng        Source
	width      float64 // Viewport size in world units
	height     float64
	candles    []Candle
	score      int

	groupLeft int // Candles still to place in the current group
	groupID   int
	nextGroup int

	minPrice float64
	maxPrice float64
}

// NewTerrain creates an empty terrain for a viewport of width x height world units.
func NewTerrain(cfg config.TerrainConfig, diff *config.DifficultyManager, rng Source, width, height float64) *Terrain {
	t := &Terrain{
		cfg:        cfg,
		difficulty: diff,
		width:      width,
		height:     height,
	}
	t.Reset(rng)
	return t
}

// Reset drops every candle, zeroes the score and installs a new random source.
func (t *Terrain) Reset(rng Source) {
	t.rng = rng
	t.candles = t.candles[:0]
	t.score = 0
	t.groupLeft = 0
	t.groupID = 0
	t.nextGroup = 0
	t.minPrice = math.Inf(1)
	t.maxPrice = math.Inf(-1)
}

// TargetWindow returns the number of candles kept alive for the current viewport.
func (t *Terrain) TargetWindow() int {
	return int(math.Ceil(t.width/(t.cfg.CandleWidth+t.cfg.MinGap))) + 1
}

// EnsureFilled appends candles until the window is full and returns how many
// were added.
func (t *Terrain) EnsureFilled() int {
	added := 0
	for len(t.candles) < t.TargetWindow() {
		t.candles = append(t.candles, t.synthesize())
		added++
	}
	return added
}

// EvictOffscreen removes leading candles whose right edge has passed x = 0
// and returns how many were removed.
func (t *Terrain) EvictOffscreen() int {
	n := 0
	for n < len(t.candles) && t.candles[n].Right() < 0 {
		n++
	}
	if n == 0 {
		return 0
	}
	t.candles = slices.Delete(t.candles, 0, n)
	t.score += n
	return n
}

// Scroll moves every candle left by dx.
func (t *Terrain) Scroll(dx float64) {
	for i := range t.candles {
		t.candles[i].X -= dx
	}
}

// Resize changes the viewport. Existing candles are clamped into the new
// vertical bounds; clamping is monotone so body ordering and chaining hold.
func (t *Terrain) Resize(width, height float64) {
	t.width = width
	t.height = height
	for i := range t.candles {
		c := &t.candles[i]
		c.Open = core.ClampF(c.Open, 0, height)
		c.Close = core.ClampF(c.Close, 0, height)
		c.Low = core.ClampF(c.Low, 0, height)
		c.High = core.ClampF(c.High, 0, height)
	}
}

// Candles returns the live window. The slice must not be modified.
func (t *Terrain) Candles() []Candle {
	return t.candles
}

// Score returns the number of candles evicted since the last reset.
func (t *Terrain) Score() int {
	return t.score
}

// PriceRange returns the smallest and largest values generated since the last
// reset. ok is false before the first candle.
func (t *Terrain) PriceRange() (lo, hi float64, ok bool) {
	if math.IsInf(t.minPrice, 1) {
		return 0, 0, false
	}
	return t.minPrice, t.maxPrice, true
}

// LowestBodyBottom returns the largest body bottom among live candles.
func (t *Terrain) LowestBodyBottom() (float64, bool) {
	if len(t.candles) == 0 {
		return 0, false
	}
	lowest := math.Inf(-1)
	for _, c := range t.candles {
		lowest = math.Max(lowest, c.BodyBottom())
	}
	return lowest, true
}

// Envelope returns the eased size progress in [0, 1] for the current score.
func (t *Terrain) Envelope() float64 {
	return t.difficulty.EasedLevel(t.score, t.cfg.ProgressionRate, t.cfg.Easing)
}

// gap draws a spacing from [minGap, maxGap(score)).
func (t *Terrain) gap() float64 {
	hi := t.difficulty.MaxGap(t.cfg.MinGap, t.cfg.MaxGap, t.score)
	return t.cfg.MinGap + t.rng.Float64()*(hi-t.cfg.MinGap)
}

func (t *Terrain) synthesize() Candle {
	cfg := t.cfg
	p := t.Envelope()
	maxHeight := core.Lerp(cfg.InitialHeight, cfg.MaxHeight, p)
	variation := core.Lerp(cfg.InitialVariation, cfg.MaxVariation, p)

	open := t.height / 2
	var last *Candle
	if n := len(t.candles); n > 0 {
		last = &t.candles[n-1]
		open = last.Close
	}

	outlier := t.rng.Float64() < cfg.OutlierChance
	bullish := t.rng.Float64() < 0.5
	wickMult := cfg.WickMinMultiplier + t.rng.Float64()*(cfg.WickMaxMultiplier-cfg.WickMinMultiplier)

	var body, extension float64
	if outlier {
		body = variation * cfg.OutlierMultiplier
		extension = body * wickMult
	} else {
		body = math.Min(t.rng.Float64()*variation, maxHeight)
		extension = variation * wickMult
	}
	body = math.Min(body, t.height)

	// Bullish candles move up the screen. A body that would leave the world
	// reverses direction instead.
	shut := open + body
	if bullish {
		shut = open - body
	}
	if shut < 0 || shut > t.height {
		bullish = !bullish
		shut = 2*open - shut
	}
	shut = core.ClampF(shut, 0, t.height)

	c := Candle{
		Width:   cfg.CandleWidth,
		Open:    open,
		Close:   shut,
		Outlier: outlier,
		Bullish: bullish,
	}
	c.Low = math.Max(c.BodyTop()-t.rng.Float64()*extension, 0)
	c.High = math.Min(c.BodyBottom()+t.rng.Float64()*extension, t.height)

	if t.groupLeft == 0 && t.rng.Float64() < cfg.GroupChance {
		t.groupLeft = t.rng.Intn(cfg.MaxGroupSize-1) + 2
		t.nextGroup++
		t.groupID = t.nextGroup
	}

	c.X = t.width
	if last != nil {
		gap := t.gap()
		if t.groupLeft > 0 {
			gap *= cfg.GroupGapRatio
		}
		c.X = last.Right() + gap
	}
	if t.groupLeft > 0 {
		c.GroupID = t.groupID
		t.groupLeft--
	}

	t.minPrice = math.Min(t.minPrice, c.Low)
	t.maxPrice = math.Max(t.maxPrice, c.High)
	return c
}
