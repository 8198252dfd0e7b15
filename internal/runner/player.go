package runner

import "github.com/vovakirdan/coinrun/internal/core"

// updatePlayer applies input, gravity and collisions to the player.
// Integration is one semi-implicit Euler step per frame.
func (s *Session) updatePlayer() {
	p := &s.player

	if s.input.Right {
		p.X += p.Speed
	}
	if s.input.Left {
		p.X -= p.Speed
	}

	if s.input.Jump && p.Grounded {
		p.DY = -p.JumpPower
		p.Grounded = false
	}

	p.DY += p.Gravity
	p.Y += p.DY

	// Land only while falling. Overlapping platforms resolve in order, and
	// landing zeroes DY, so the first one to catch the player holds it.
	p.Grounded = false
	for _, plat := range s.platforms {
		if p.Box().Overlaps(plat.Box()) && p.DY > 0 {
			p.Y = plat.Y - p.Height
			p.DY = 0
			p.Grounded = true
		}
	}

	for i := range s.coins {
		c := &s.coins[i]
		if c.Active && p.Box().Overlaps(c.Box()) {
			c.Active = false
			s.score++
			s.stats.CoinsCollected++
		}
	}

	for i := 0; i < s.enemies.Length(); i++ {
		if p.Box().Overlaps(s.enemies.Get(i).(*Enemy).Box()) {
			s.endRun(EndEnemy)
		}
	}

	if p.Y+p.Height > s.cfg.World.Height {
		s.endRun(EndFell)
	}

	p.X = core.ClampF(p.X, 0, s.cfg.World.Width-p.Width)
}
