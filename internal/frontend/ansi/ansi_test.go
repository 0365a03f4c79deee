package ansi_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/castlesiege/internal/frontend/ansi"
	"github.com/cory-johannsen/castlesiege/internal/frontend/hud"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mdanger\033[0m", ansi.Colorize(ansi.Red, "danger"))
}

func TestColorf(t *testing.T) {
	assert.Equal(t, "\033[32mhealth: 42\033[0m", ansi.Colorf(ansi.Green, "health: %d", 42))
}

func TestStripANSI(t *testing.T) {
	input := "\033[31mred\033[0m normal \033[1m\033[32mbold green\033[0m"
	assert.Equal(t, "red normal bold green", ansi.StripANSI(input))
	assert.Equal(t, "", ansi.StripANSI(""))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "[##########..........]", ansi.StripANSI(ansi.Bar(0.5, ansi.Green)))
	assert.Equal(t, "[....................]", ansi.StripANSI(ansi.Bar(-1, ansi.Green)))
	assert.Equal(t, "[####################]", ansi.StripANSI(ansi.Bar(7, ansi.Green)))
}

func TestRenderHUD(t *testing.T) {
	v := hud.View{
		Level: 3, XP: 20, XPNext: 169,
		HP: 80, MaxHP: 100, Armor: 4, Power: 14,
		Inventory:  []string{"Helm fragment"},
		EventLabel: "Castle gate opened!", EventActive: true,
	}
	out := ansi.StripANSI(ansi.RenderHUD(v))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Level 3")
	assert.Contains(t, lines[0], "20/169")
	assert.Contains(t, lines[1], "Armor 4")
	assert.Equal(t, "Castle gate opened!", lines[2])
	assert.Equal(t, "Inventory: Helm fragment", lines[3])
}

func TestRenderNotice(t *testing.T) {
	got := ansi.RenderNotice(sim.Notice{Kind: sim.NoticeKill, At: 4, Text: "Mob defeated"})
	assert.Equal(t, "[   4.00s] Mob defeated", ansi.StripANSI(got))
	assert.Contains(t, got, ansi.Red)
}

// Property: StripANSI(Colorize(color, text)) == text for any ASCII text.
func TestPropertyStripANSIInversesColorize(t *testing.T) {
	colors := []string{ansi.Red, ansi.Green, ansi.Blue, ansi.Yellow, ansi.Cyan, ansi.Magenta, ansi.White, ansi.Bold, ansi.Dim}
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,50}`).Draw(rt, "text")
		color := colors[rapid.IntRange(0, len(colors)-1).Draw(rt, "color")]
		if got := ansi.StripANSI(ansi.Colorize(color, text)); got != text {
			rt.Fatalf("StripANSI(Colorize(%q)) = %q", text, got)
		}
	})
}
