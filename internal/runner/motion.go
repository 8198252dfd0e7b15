package runner

import "github.com/vovakirdan/coinrun/internal/core"

// movePlatforms scrolls platforms left and recycles the ones that left the
// screen. A recycle moves the platform past the right edge with a new height
// and width, scores a point and speeds the game up.
//
// With AvoidOverlap the new spot must not overlap another platform; if it
// does, the platform stays where it is and tries again next frame.
func (s *Session) movePlatforms() {
	rc := s.cfg.Recycle
	worldW, worldH := s.cfg.World.Width, s.cfg.World.Height

	for i := range s.platforms {
		p := &s.platforms[i]
		p.X -= s.gameSpeed

		if !offScreen(p.Box()) {
			continue
		}

		x := worldW + s.rng.Float64()*rc.SpawnBand
		y := worldH - rc.MinFromBottom - s.rng.Float64()*(rc.MaxFromBottom-rc.MinFromBottom)
		w := rc.MinWidth + s.rng.Float64()*(rc.MaxWidth-rc.MinWidth)

		if rc.AvoidOverlap && s.overlapsOtherPlatform(i, core.NewBox(x, y, w, p.Height)) {
			continue
		}

		p.X, p.Y, p.Width = x, y, w
		s.score++
		s.gameSpeed += s.cfg.Physics.SpeedIncrement
		s.stats.PlatformsRecycled++
	}
}

// overlapsOtherPlatform tests a proposed box against every platform except idx.
func (s *Session) overlapsOtherPlatform(idx int, b core.Box) bool {
	for j, other := range s.platforms {
		if j != idx && b.Overlaps(other.Box()) {
			return true
		}
	}
	return false
}

// moveCoins scrolls coins left; coins that leave the screen reappear past
// the right edge at a random height.
func (s *Session) moveCoins() {
	rc := s.cfg.Recycle
	worldW, worldH := s.cfg.World.Width, s.cfg.World.Height

	for i := range s.coins {
		c := &s.coins[i]
		if !c.Active {
			continue
		}
		c.X -= s.gameSpeed

		if offScreen(c.Box()) {
			c.X = worldW + s.rng.Float64()*rc.SpawnBand
			c.Y = worldH - rc.MinFromBottom - s.rng.Float64()*(rc.MaxFromBottom-rc.MinFromBottom)
		}
	}
}
