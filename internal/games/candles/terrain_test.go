package candles

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/candle-jumper/internal/config"
)

func newTestTerrain(seed int64, width, height float64) *Terrain {
	cfg := config.DefaultCandleConfig()
	diff := config.NewDifficultyManager(cfg.Difficulty, cfg.Level.Length)
	return NewTerrain(cfg.Terrain, diff, rand.New(rand.NewSource(seed)), width, height)
}

func requireInvariants(t *testing.T, candles []Candle, height float64) {
	t.Helper()
	for i, c := range candles {
		require.LessOrEqual(t, 0.0, c.Low, "candle %d low", i)
		require.LessOrEqual(t, c.Low, c.BodyTop(), "candle %d low above body", i)
		require.LessOrEqual(t, c.BodyTop(), c.BodyBottom(), "candle %d body", i)
		require.LessOrEqual(t, c.BodyBottom(), c.High, "candle %d high inside body", i)
		require.LessOrEqual(t, c.High, height, "candle %d high", i)
		require.Greater(t, c.Width, 0.0, "candle %d width", i)
		if i > 0 {
			require.Equal(t, candles[i-1].Close, c.Open, "candle %d does not chain", i)
			require.Greater(t, c.X, candles[i-1].Right(), "candle %d overlaps its predecessor", i)
		}
	}
}

func TestEnsureFilledWindowOfTen(t *testing.T) {
	// ceil(225 / (20 + 5)) + 1 = 10
	tr := newTestTerrain(1, 225, 480)
	require.Equal(t, 10, tr.TargetWindow())

	added := tr.EnsureFilled()
	assert.Equal(t, 10, added)
	require.Len(t, tr.Candles(), 10)

	candles := tr.Candles()
	assert.Equal(t, 240.0, candles[0].Open, "first candle opens mid-screen")
	assert.Equal(t, 225.0, candles[0].X, "first candle starts at the right edge")
	for i := 1; i < len(candles); i++ {
		assert.Equal(t, candles[i-1].Close, candles[i].Open, "segment %d", i)
	}

	assert.Zero(t, tr.EnsureFilled(), "full window must be a no-op")
	assert.Len(t, tr.Candles(), 10)
}

func TestCandleInvariantsAcrossLevel(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		tr := newTestTerrain(seed, 800, 440)
		tr.EnsureFilled()
		requireInvariants(t, tr.Candles(), 440)

		// Drive the terrain past the level length so every envelope is exercised.
		for tr.Score() < 1100 {
			tr.Scroll(40)
			tr.EvictOffscreen()
			tr.EnsureFilled()
		}
		requireInvariants(t, tr.Candles(), 440)
	}
}

func TestEvictOffscreenCountsEachCandle(t *testing.T) {
	tr := newTestTerrain(7, 400, 480)
	tr.EnsureFilled()
	before := len(tr.Candles())

	assert.Zero(t, tr.EvictOffscreen(), "nothing is off-screen yet")

	// Shift so only the first candle's right edge is past x = 0.
	tr.Scroll(tr.Candles()[1].X)
	assert.Equal(t, 1, tr.EvictOffscreen())
	assert.Equal(t, 1, tr.Score())
	assert.Len(t, tr.Candles(), before-1)

	tr.Scroll(tr.Candles()[3].X)
	assert.Equal(t, 3, tr.EvictOffscreen())
	assert.Equal(t, 4, tr.Score())

	assert.Equal(t, 4, tr.EnsureFilled())
	requireInvariants(t, tr.Candles(), 480)
}

func TestScoreMonotonic(t *testing.T) {
	tr := newTestTerrain(3, 600, 400)
	tr.EnsureFilled()

	prev := 0
	for i := 0; i < 500; i++ {
		tr.Scroll(4.5)
		n := tr.EvictOffscreen()
		require.GreaterOrEqual(t, n, 0)
		require.Equal(t, prev+n, tr.Score())
		prev = tr.Score()
		tr.EnsureFilled()
	}
	assert.Positive(t, tr.Score())
}

func TestTerrainDeterminism(t *testing.T) {
	a := newTestTerrain(99, 800, 440)
	b := newTestTerrain(99, 800, 440)

	for i := 0; i < 300; i++ {
		a.EnsureFilled()
		b.EnsureFilled()
		a.Scroll(6)
		b.Scroll(6)
		a.EvictOffscreen()
		b.EvictOffscreen()
	}
	assert.Equal(t, a.Candles(), b.Candles())
	assert.Equal(t, a.Score(), b.Score())

	c := newTestTerrain(100, 800, 440)
	c.EnsureFilled()
	a.Reset(rand.New(rand.NewSource(99)))
	a.EnsureFilled()
	assert.NotEqual(t, a.Candles(), c.Candles(), "different seeds should differ")
}

func TestGroupsUseReducedSpacing(t *testing.T) {
	cfg := config.DefaultCandleConfig().Terrain
	// At score 0 the gap range collapses to exactly min_gap.
	tr := newTestTerrain(5, 25*300, 480)
	tr.EnsureFilled()
	candles := tr.Candles()

	groupGap := cfg.MinGap * cfg.GroupGapRatio
	sizes := map[int]int{}
	for i := 1; i < len(candles); i++ {
		gap := candles[i].X - candles[i-1].Right()
		if candles[i].GroupID != 0 {
			assert.InDelta(t, groupGap, gap, 1e-9, "grouped candle %d", i)
		} else {
			assert.InDelta(t, cfg.MinGap, gap, 1e-9, "candle %d", i)
		}
	}
	for _, c := range candles {
		if c.GroupID != 0 {
			sizes[c.GroupID]++
		}
	}

	require.NotEmpty(t, sizes, "expected at least one group in 300 candles")
	last := candles[len(candles)-1].GroupID
	for id, n := range sizes {
		if id == last {
			continue // may still be open
		}
		assert.GreaterOrEqual(t, n, 2, "group %d", id)
		assert.LessOrEqual(t, n, cfg.MaxGroupSize, "group %d", id)
	}
}

func TestGroupStateSurvivesRefill(t *testing.T) {
	tr := newTestTerrain(11, 400, 480)
	for i := 0; i < 2000; i++ {
		tr.EnsureFilled()
		tr.Scroll(5)
		tr.EvictOffscreen()
	}
	// Each group ID appears in one contiguous run.
	seen := map[int]bool{}
	prev := 0
	for _, c := range tr.Candles() {
		if c.GroupID != 0 && c.GroupID != prev {
			assert.False(t, seen[c.GroupID], "group %d split", c.GroupID)
			seen[c.GroupID] = true
		}
		prev = c.GroupID
	}
}

func TestBodiesFollowEnvelope(t *testing.T) {
	cfg := config.DefaultCandleConfig().Terrain
	tr := newTestTerrain(21, 25*400, 2000)
	tr.EnsureFilled()

	for i, c := range tr.Candles() {
		body := c.BodyBottom() - c.BodyTop()
		if c.Outlier {
			assert.InDelta(t, cfg.InitialVariation*cfg.OutlierMultiplier, body, 1e-9, "outlier %d", i)
		} else {
			assert.LessOrEqual(t, body, cfg.InitialVariation, "candle %d", i)
		}
	}
}

func TestEnvelopeEased(t *testing.T) {
	tr := newTestTerrain(1, 400, 480)
	assert.Equal(t, 0.0, tr.Envelope())

	tr.score = 100
	eased := tr.Envelope()
	assert.Greater(t, eased, 100.0/500.0, "eased progress runs ahead of linear")

	tr.score = 500
	assert.Equal(t, 1.0, tr.Envelope())
	tr.score = 5000
	assert.Equal(t, 1.0, tr.Envelope())
}

func TestTerrainResize(t *testing.T) {
	tr := newTestTerrain(8, 800, 480)
	tr.EnsureFilled()
	require.Equal(t, 33, tr.TargetWindow())

	tr.Resize(400, 200)
	requireInvariants(t, tr.Candles(), 200)
	assert.Equal(t, 17, tr.TargetWindow())

	tr.Resize(1200, 200)
	tr.EnsureFilled()
	assert.Len(t, tr.Candles(), tr.TargetWindow())
	requireInvariants(t, tr.Candles(), 200)
}

func TestPriceRange(t *testing.T) {
	tr := newTestTerrain(4, 400, 480)
	_, _, ok := tr.PriceRange()
	assert.False(t, ok)

	tr.EnsureFilled()
	lo, hi, ok := tr.PriceRange()
	require.True(t, ok)

	minLow, maxHigh := tr.Candles()[0].Low, tr.Candles()[0].High
	for _, c := range tr.Candles() {
		minLow = min(minLow, c.Low)
		maxHigh = max(maxHigh, c.High)
	}
	assert.Equal(t, minLow, lo)
	assert.Equal(t, maxHigh, hi)
}

func TestWickCap(t *testing.T) {
	c := Candle{Open: 100, Close: 140, Low: 10, High: 400}
	assert.Equal(t, 80.0, c.WickTop(0.5))
	assert.Equal(t, 160.0, c.WickBottom(0.5))

	short := Candle{Open: 100, Close: 140, Low: 95, High: 150}
	assert.Equal(t, 95.0, short.WickTop(0.5))
	assert.Equal(t, 150.0, short.WickBottom(0.5))
}
