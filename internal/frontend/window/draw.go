package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/cory-johannsen/castlesiege/internal/frontend/hud"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

const (
	barHeight  = 4
	lineHeight = 16
	hudMargin  = 10
)

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.snap
	screen.Fill(hud.Background)
	if snap.Event.Active {
		vector.DrawFilledRect(screen, 0, 0, float32(snap.Bounds.Width), float32(snap.Bounds.Height), hud.EventTint, false)
	}

	drawFeatures(screen, snap.Features)
	for _, d := range snap.Drops {
		vector.DrawFilledRect(screen, float32(d.Pos.X())-5, float32(d.Pos.Y())-5, 10, 10, hud.DropColor, true)
	}
	for _, m := range snap.Mobs {
		x, y, r := float32(m.Pos.X()), float32(m.Pos.Y()), float32(m.Radius)
		vector.DrawFilledCircle(screen, x, y, r, hud.HueColor(m.Hue), true)
		drawBar(screen, x-r, y-r-barHeight-2, 2*r, m.HPRatio)
	}
	p := snap.Player
	vector.DrawFilledCircle(screen, float32(p.Pos.X()), float32(p.Pos.Y()), float32(p.Radius), hud.PlayerColor, true)

	g.drawHUD(screen)
}

func drawFeatures(screen *ebiten.Image, features []sim.Feature) {
	for _, f := range features {
		half := float32(f.Size / 2)
		x, y := float32(f.Pos.X()), float32(f.Pos.Y())
		switch f.Kind {
		case sim.FeatureTower:
			vector.DrawFilledRect(screen, x-half, y-half, 2*half, 2*half, hud.TowerColor, false)
		case sim.FeatureBanner:
			vector.DrawFilledRect(screen, x-half/2, y-half, half, 2*half, hud.BannerColor, false)
		}
	}
}

func drawBar(screen *ebiten.Image, x, y, w float32, ratio float64) {
	vector.DrawFilledRect(screen, x, y, w, barHeight, hud.HPBarBack, false)
	vector.DrawFilledRect(screen, x, y, w*float32(ratio), barHeight, hud.HPBarFill, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	v := hud.FromSnapshot(g.snap, g.opts.InventorySize)
	y := hudMargin + lineHeight
	for i, line := range v.Lines() {
		clr := hud.TextColor
		if i == 2 {
			clr = hud.PeacefulText
			if v.EventActive {
				clr = hud.EventColor
			}
		}
		text.Draw(screen, line, face, hudMargin, y, clr)
		y += lineHeight
	}
	vector.DrawFilledRect(screen, hudMargin, float32(y-lineHeight/2), 160, barHeight, hud.HPBarBack, false)
	vector.DrawFilledRect(screen, hudMargin, float32(y-lineHeight/2), 160*float32(v.XPRatio()), barHeight, hud.XPBarFill, false)

	y = int(g.snap.Bounds.Height) - hudMargin
	for _, it := range g.feed.Items() {
		text.Draw(screen, it.Text, face, hudMargin, y, hud.WithAlpha(hud.TextColor, g.feed.Alpha(it)))
		y -= lineHeight
	}
	if g.paused {
		msg := "PAUSED (P to resume)"
		text.Draw(screen, msg, face, int(g.snap.Bounds.Width)/2-len(msg)*7/2, int(g.snap.Bounds.Height)/2, hud.TextColor)
	}
	fps := fmt.Sprintf("%.0f fps", ebiten.ActualFPS())
	text.Draw(screen, fps, face, int(g.snap.Bounds.Width)-len(fps)*7-hudMargin, hudMargin+lineHeight, hud.PeacefulText)
}
