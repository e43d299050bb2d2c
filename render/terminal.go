package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/setanarut/beadgrid"
	"golang.org/x/term"
)

// TerminalWidth reports the column count of stdout, or fallback when stdout
// is not a terminal.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// Terminal renders p with 24-bit ANSI colors, two bead rows per text line
// using the upper half block. Patterns wider than maxCols are sampled down.
// Empty cells keep the terminal background.
func Terminal(p *beadgrid.Pattern, maxCols int) string {
	if p == nil || p.Width == 0 || p.Height == 0 {
		return ""
	}
	cols := p.Width
	if maxCols > 0 && cols > maxCols {
		cols = maxCols
	}
	rows := max(1, p.Height*cols/p.Width)

	cell := func(x, y int) (beadgrid.Cell, bool) {
		if y >= rows {
			return beadgrid.Cell{}, false
		}
		c := p.At(x*p.Width/cols, y*p.Height/rows)
		return c, !c.Empty
	}

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := range cols {
			top, topOK := cell(x, y)
			bot, botOK := cell(x, y+1)
			switch {
			case topOK && botOK:
				t, b := top.Entry.Hex, bot.Entry.Hex
				fmt.Fprintf(&sb, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀", t.R, t.G, t.B, b.R, b.G, b.B)
			case topOK:
				t := top.Entry.Hex
				fmt.Fprintf(&sb, "\033[0m\033[38;2;%d;%d;%dm▀", t.R, t.G, t.B)
			case botOK:
				b := bot.Entry.Hex
				fmt.Fprintf(&sb, "\033[0m\033[38;2;%d;%d;%dm▄", b.R, b.G, b.B)
			default:
				sb.WriteString("\033[0m ")
			}
		}
		sb.WriteString("\033[0m\n")
	}
	return sb.String()
}
