package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// cellWidth returns how many screen cells r occupies when drawn at cell x.
func cellWidth(r rune, x, tabWidth int) int {
	if r == '\t' {
		return tabWidth - x%tabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 0
}

// displayWidth returns the number of cells text occupies.
func displayWidth(text string, tabWidth int) int {
	x := 0
	for _, r := range text {
		x += cellWidth(r, x, tabWidth)
	}
	return x
}

// drawString draws s at (x, y), clipped to width cells.
func drawString(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	end := x + width
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > end {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	for ; x < end; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
