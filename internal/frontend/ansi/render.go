package ansi

import (
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/castlesiege/internal/frontend/hud"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

const barWidth = 20

// Bar draws a fixed-width gauge filled to ratio.
func Bar(ratio float64, fill string) string {
	ratio = math.Min(1, math.Max(0, ratio))
	n := int(math.Round(ratio * barWidth))
	return "[" + Colorize(fill, strings.Repeat("#", n)) + strings.Repeat(".", barWidth-n) + "]"
}

// RenderHUD formats a HUD view as coloured lines terminated by "\n".
func RenderHUD(v hud.View) string {
	var b strings.Builder

	hpRatio := 0.0
	if v.MaxHP > 0 {
		hpRatio = v.HP / v.MaxHP
	}
	hpColor := BrightGreen
	switch {
	case hpRatio < 0.25:
		hpColor = BrightRed
	case hpRatio < 0.5:
		hpColor = Yellow
	}

	b.WriteString(Colorf(BrightYellow, "Level %d", v.Level))
	fmt.Fprintf(&b, "  XP %s %d/%d\n", Bar(v.XPRatio(), Cyan), int(math.Floor(v.XP)), v.XPNext)
	fmt.Fprintf(&b, "HP %s %s  ", Bar(hpRatio, hpColor), Colorf(hpColor, "%d", int(math.Ceil(v.HP))))
	fmt.Fprintf(&b, "%s  %s\n", Colorf(BrightCyan, "Armor %g", v.Armor), Colorf(BrightWhite, "Power %g", v.Power))

	if v.EventActive {
		b.WriteString(Colorize(Bold+BrightRed, v.EventLabel))
	} else {
		b.WriteString(Colorize(Dim, v.EventLabel))
	}
	b.WriteString("\n")

	if len(v.Inventory) == 0 {
		b.WriteString(Colorize(Dim, "Inventory: empty"))
	} else {
		b.WriteString(Colorf(Magenta, "Inventory: %s", strings.Join(v.Inventory, ", ")))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderNotice formats one notice as a single coloured line.
func RenderNotice(n sim.Notice) string {
	stamp := Colorf(Dim, "[%7.2fs]", n.At)
	switch n.Kind {
	case sim.NoticeKill:
		return stamp + " " + Colorize(Red, n.Text)
	case sim.NoticePickup:
		return stamp + " " + Colorize(Green, n.Text)
	case sim.NoticeLevelUp:
		return stamp + " " + Colorize(Bold+BrightYellow, n.Text)
	case sim.NoticeEventStart:
		return stamp + " " + Colorize(Bold+BrightRed, n.Text)
	case sim.NoticeEventEnd:
		return stamp + " " + Colorize(Blue, n.Text)
	default:
		return stamp + " " + n.Text
	}
}
