package validator

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleMatch   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleMiss    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Run draws the validator on the terminal until the user quits.
func (v *Validator) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return v.RunScreen(screen)
}

// RunScreen runs the event loop on an initialized screen.
func (v *Validator) RunScreen(screen tcell.Screen) error {
	v.draw(screen)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		if v.HandleEvent(ev) {
			return nil
		}
		v.draw(screen)
	}
}

func (v *Validator) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()

	for y, line := range v.Lines() {
		if y >= height {
			break
		}
		style := lineStyle(y, line)
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	screen.Show()
}

func lineStyle(row int, line string) tcell.Style {
	switch {
	case row == 0:
		return styleTitle
	case strings.HasPrefix(line, "MATCH:"):
		return styleMatch
	case line == "No match":
		return styleMiss
	default:
		return styleDefault
	}
}
