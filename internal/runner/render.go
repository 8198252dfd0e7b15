package runner

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/coinrun/internal/core"
)

// Visual representation
const (
	PlatformChar = '▓'
	CoinChar     = 'o'
	EnemyChar    = '▒'
	PlayerChar   = '█'
	GroundChar   = '─'
)

// hudRows is the number of terminal rows above the playfield.
const hudRows = 1

// Viewport maps the world onto a screen, leaving room for the HUD.
func (g *Game) Viewport(dst *core.Screen) core.Viewport {
	cfg := g.session.Config()
	return core.NewViewport(cfg.World.Width, cfg.World.Height, dst.Width(), dst.Height()-hudRows, hudRows)
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.session.Snapshot()
	vp := g.Viewport(dst)

	// Bottom edge of the world; falling past it ends the run
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorGray)

	for _, b := range snap.Platforms {
		dst.DrawRect(vp.Project(b), PlatformChar, core.ColorGray)
	}
	for _, b := range snap.Coins {
		dst.DrawRect(vp.Project(b), CoinChar, core.ColorBrightYellow)
	}
	for _, b := range snap.Enemies {
		dst.DrawRect(vp.Project(b), EnemyChar, core.ColorBrightRed)
	}
	dst.DrawRect(vp.Project(snap.Player), PlayerChar, core.ColorBrightGreen)

	g.drawHUD(dst, snap)

	switch {
	case snap.Phase == PhaseNotStarted:
		g.drawCenteredMessage(dst, g.Title(), "Press Enter to start")
	case snap.Phase == PhaseGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 0, ' ')
	}
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))

	speed := fmt.Sprintf("Speed: %.2f", roundSpeed(snap.GameSpeed))
	dst.DrawText(dst.Width()-utf8.RuneCountInString(speed)-1, 0, speed)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := utf8.RuneCountInString(title)
	subtitleLen := utf8.RuneCountInString(subtitle)

	boxW := core.Max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}
