package runner

import "math"

// updateEnemies spawns a new enemy when the spawn interval has elapsed and
// there is room, then moves every enemy and drops the ones that left the
// screen.
//
// Each spawn shortens the interval down to the configured floor. Removal
// only ever takes the oldest enemy: a faster enemy that leaves the screen
// early waits, invisible, until everything spawned before it is gone.
func (s *Session) updateEnemies(now float64) {
	ec := s.cfg.Enemies

	if now-s.lastSpawn > s.spawnInterval && s.enemies.Length() < ec.MaxEnemies {
		y := s.cfg.World.Height - ec.FromBottom - s.rng.Float64()*ec.Jitter
		speed := s.gameSpeed * (1 + s.rng.Float64())
		s.enemies.Add(&Enemy{
			X:      s.cfg.World.Width,
			Y:      y,
			Width:  ec.Width,
			Height: ec.Height,
			Speed:  speed,
		})
		s.lastSpawn = now
		s.spawnInterval = math.Max(float64(ec.SpawnIntervalMin), s.spawnInterval-float64(ec.SpawnIntervalStep))
		s.stats.EnemiesSpawned++
	}

	for i := 0; i < s.enemies.Length(); i++ {
		e := s.enemies.Get(i).(*Enemy)
		e.X -= e.Speed
	}

	for s.enemies.Length() > 0 && offScreen(s.enemies.Peek().(*Enemy).Box()) {
		s.enemies.Remove()
	}
}
