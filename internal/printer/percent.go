package printer

import (
	"fmt"
	"strings"
)

// PercentType is a bit field selecting how percentages are printed.
type PercentType uint8

const (
	// PercentNum prints the percentage as a number.
	PercentNum PercentType = 1 << iota
	// PercentBar prints the percentage as a bar.
	PercentBar
	// PercentHideOthers hides the values the percentage derives from.
	PercentHideOthers
)

// Has returns true if every bit of flag is set.
func (t PercentType) Has(flag PercentType) bool {
	return t&flag == flag
}

const (
	barWidth     = 10
	barElapsed   = "■"
	barRemaining = "-"
)

// PercentBar renders percent as a bar of 10 blocks.
// Elapsed blocks are green from the green block index, yellow from the yellow one and red from the
// red one.
func (p *Printer) PercentBar(percent, green, yellow, red uint8) string {
	blocks := (int(percent) + 5) / 10
	if blocks > barWidth {
		blocks = barWidth
	}

	var b strings.Builder
	b.WriteString("[ ")
	for i := range barWidth {
		if i >= blocks {
			b.WriteString(barRemaining)
			continue
		}

		var color string
		switch {
		case i >= int(red):
			color = "red"
		case i >= int(yellow):
			color = "yellow"
		case i >= int(green):
			color = "green"
		}
		b.WriteString(p.Colorize(barElapsed, color))
	}
	b.WriteString(" ]")

	return b.String()
}

// PercentNum renders percent as a number, green up to green, yellow up to yellow and red above.
func (p *Printer) PercentNum(percent, green, yellow uint8, parentheses bool) string {
	color := "red"
	switch {
	case percent <= green:
		color = "green"
	case percent <= yellow:
		color = "yellow"
	}

	s := p.Colorize(fmt.Sprintf("%d%%", percent), color)
	if parentheses {
		s = "(" + s + ")"
	}
	return s
}
