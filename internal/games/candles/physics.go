package candles

import (
	"math"

	"github.com/vovakirdan/candle-jumper/internal/config"
	"github.com/vovakirdan/candle-jumper/internal/core"
)

// Player is the jumping sprite. X stays at the viewport centre column; the
// world scrolls underneath.
type Player struct {
	X, Y      float64 // Centre
	VY        float64 // Positive is downward
	Radius    float64
	JumpCount int
	MaxJumps  int
	OnGround  bool
}

// Top returns the y-coordinate of the top edge.
func (p Player) Top() float64 { return p.Y - p.Radius }

// Bottom returns the y-coordinate of the bottom edge.
func (p Player) Bottom() float64 { return p.Y + p.Radius }

// Left returns the x-coordinate of the left edge.
func (p Player) Left() float64 { return p.X - p.Radius }

// Right returns the x-coordinate of the right edge.
func (p Player) Right() float64 { return p.X + p.Radius }

// Platform is the one-shot start ledge.
type Platform struct {
	core.RectF
	Visible bool
}

// placePlatform centres the platform under the viewport middle.
func placePlatform(cfg config.CandleConfig, width, height float64) core.RectF {
	w := cfg.Player.Radius * cfg.Platform.WidthRadii
	y := math.Min(height/2+cfg.Platform.Offset, height-cfg.Platform.Height)
	return core.RectF{
		X: width/2 - w/2,
		Y: math.Max(y, 0),
		W: w,
		H: cfg.Platform.Height,
	}
}

// Camera is the vertical scroll offset of the view into the world.
type Camera struct {
	Y float64
}

// Follow moves the camera a fraction of the way towards keeping the span
// [top, bottom] inside the central band of a viewHeight tall view.
func (c *Camera) Follow(top, bottom, viewHeight float64, cfg config.CameraConfig) {
	band := viewHeight * cfg.DeadZone
	switch {
	case top < c.Y+band:
		c.Y += (top - (c.Y + band)) * cfg.TrackingSpeed
	case bottom > c.Y+viewHeight-band:
		c.Y += (bottom - (c.Y + viewHeight - band)) * cfg.TrackingSpeed
	}
	c.Y = math.Max(0, c.Y)
}

// integrate applies gravity and moves the player for one tick scaled by dt.
func integrate(p *Player, cfg config.PhysicsConfig, dt float64) {
	p.VY += cfg.Gravity * dt
	p.VY = math.Min(p.VY, cfg.MaxFallSpeed)
	p.Y += p.VY * dt
}

// landsOn reports whether a player whose bottom edge moved from prevBottom
// to its current position comes to rest on a surface at top. Only the band
// just below the surface counts, and only while not rising. A bottom edge
// that crossed the surface during the tick also lands.
func landsOn(p Player, prevBottom, top, band float64) bool {
	if p.VY < 0 {
		return false
	}
	bottom := p.Bottom()
	if bottom >= top && bottom <= top+band {
		return true
	}
	return prevBottom <= top && bottom >= top
}

// A player resting on a surface has its bottom edge within this of the top.
const surfaceEpsilon = 1e-9

// contact describes what the player touched this tick.
type contact struct {
	onPlatform bool
	candle     int // Index of the candle landed on, or -1
	surface    float64
	fallSpeed  float64 // VY before the snap
}

func (c contact) grounded() bool {
	return c.onPlatform || c.candle >= 0
}

// resolve tests the player against the platform and every candle, snapping
// onto the highest surface hit. It never mutates candles.
func resolve(p *Player, prevBottom float64, platform Platform, candles []Candle, band float64) contact {
	hit := contact{candle: -1, surface: math.Inf(1), fallSpeed: p.VY}

	if platform.Visible && platform.OverlapsX(p.Left(), p.Right()) &&
		landsOn(*p, prevBottom, platform.Y, platform.H) {
		hit.onPlatform = true
		hit.surface = platform.Y
	}

	for i, c := range candles {
		if !c.Body().OverlapsX(p.Left(), p.Right()) {
			continue
		}
		top := c.BodyTop()
		if top < hit.surface && landsOn(*p, prevBottom, top, band) {
			hit.onPlatform = false
			hit.candle = i
			hit.surface = top
		}
	}

	p.OnGround = hit.grounded()
	if p.OnGround {
		p.Y = hit.surface - p.Radius
		p.VY = 0
		p.JumpCount = 0
	}
	return hit
}

// jumpImpulse returns the upward velocity for the next charge.
func jumpImpulse(cfg config.PhysicsConfig, charge int) float64 {
	falloff := 1.0
	if n := len(cfg.JumpFalloff); n > 0 {
		falloff = cfg.JumpFalloff[min(charge, n-1)]
	}
	return -cfg.JumpForce * cfg.JumpScale * falloff
}
