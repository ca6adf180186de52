package validator

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stratagem/internal/input/dictionary"
	"github.com/dshills/stratagem/internal/input/key"
	"github.com/dshills/stratagem/internal/input/matcher"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	entries := []dictionary.Entry{
		{Key: "A", Name: "Alpha", Sequence: key.MustParseSequence("UP DOWN")},
		{Key: "B", Name: "Bravo", Sequence: key.MustParseSequence("UP UP DOWN")},
		{Key: "C", Sequence: key.MustParseSequence("UP UP LEFT")},
		{Key: "D", Sequence: key.MustParseSequence("UP UP RIGHT")},
		{Key: "E", Sequence: key.MustParseSequence("UP LEFT DOWN")},
		{Key: "F", Sequence: key.MustParseSequence("UP RIGHT DOWN")},
		{Key: "G", Sequence: key.MustParseSequence("UP RIGHT LEFT")},
	}
	dict, err := dictionary.New(entries)
	if err != nil {
		t.Fatal(err)
	}
	return New(matcher.Static{Dict: dict})
}

func arrow(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func press(v *Validator, keys ...tcell.Key) {
	for _, k := range keys {
		v.HandleEvent(arrow(k, tcell.ModNone))
	}
}

func TestInitialLines(t *testing.T) {
	v := testValidator(t)

	lines := v.Lines()
	if !strings.Contains(lines[0], "7 stratagems") {
		t.Errorf("title = %q", lines[0])
	}
	if lines[3] != "Sequence: (empty)" {
		t.Errorf("sequence line = %q", lines[3])
	}
	if lines[4] != "Modifier: none" {
		t.Errorf("modifier line = %q", lines[4])
	}
}

func TestCandidateDisplay(t *testing.T) {
	tests := []struct {
		name string
		keys []tcell.Key
		want string
	}{
		{"many candidates", []tcell.Key{tcell.KeyUp}, "7 possible matches"},
		{"few candidates", []tcell.Key{tcell.KeyUp, tcell.KeyUp}, "Possible: B, C, D"},
		{"exact with name", []tcell.Key{tcell.KeyUp, tcell.KeyUp, tcell.KeyDown}, "MATCH: Bravo [B]"},
		{"exact without name", []tcell.Key{tcell.KeyUp, tcell.KeyUp, tcell.KeyLeft}, "MATCH: C [C]"},
		{"no match", []tcell.Key{tcell.KeyDown}, "No match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testValidator(t)
			press(v, tt.keys...)

			lines := v.Lines()
			if got := lines[len(lines)-1]; got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSequenceLine(t *testing.T) {
	v := testValidator(t)
	press(v, tcell.KeyUp, tcell.KeyUp)

	if got := v.Lines()[3]; got != "Sequence: ↑ ↑  (UP UP)" {
		t.Errorf("sequence line = %q", got)
	}

	// The matched sequence stays on screen after the matcher resets.
	press(v, tcell.KeyDown)
	if got := v.Lines()[3]; got != "Sequence: ↑ ↑ ↓  (UP UP DOWN)" {
		t.Errorf("sequence line = %q", got)
	}
}

func TestModifierModes(t *testing.T) {
	tests := []struct {
		name string
		mods []tcell.ModMask
		want matcher.ModifierMode
	}{
		{"held", []tcell.ModMask{tcell.ModCtrl, tcell.ModCtrl}, matcher.ModeHeld},
		{"never held", []tcell.ModMask{tcell.ModNone, tcell.ModNone}, matcher.ModePressedThenReleased},
		{"released midway", []tcell.ModMask{tcell.ModCtrl, tcell.ModNone}, matcher.ModeMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testValidator(t)
			keys := []tcell.Key{tcell.KeyUp, tcell.KeyDown}
			for i, k := range keys {
				v.HandleEvent(arrow(k, tt.mods[i]))
			}

			if v.last.Kind != matcher.Exact || v.last.Key != "A" {
				t.Fatalf("result = %s, want exact A", v.last)
			}
			if v.last.Mode != tt.want {
				t.Errorf("mode = %v, want %v", v.last.Mode, tt.want)
			}
			if !strings.Contains(v.Lines()[4], tt.want.String()) {
				t.Errorf("modifier line = %q", v.Lines()[4])
			}
		})
	}
}

func TestModifierIdentity(t *testing.T) {
	tests := []struct {
		mask tcell.ModMask
		want key.Modifier
	}{
		{tcell.ModNone, key.ModNone},
		{tcell.ModCtrl, key.ModLeftCtrl},
		{tcell.ModAlt, key.ModLeftAlt},
		{tcell.ModShift, key.ModLeftShift},
		{tcell.ModMeta, key.ModLeftSuper},
		{tcell.ModCtrl | tcell.ModShift, key.ModLeftCtrl},
	}
	for _, tt := range tests {
		if got := modifierFromMask(tt.mask); got != tt.want {
			t.Errorf("modifierFromMask(%v) = %v, want %v", tt.mask, got, tt.want)
		}
	}

	v := testValidator(t)
	v.HandleEvent(arrow(tcell.KeyUp, tcell.ModAlt))
	if got := v.last.Modifier; got != key.ModLeftAlt {
		t.Errorf("result modifier = %v, want left alt", got)
	}
}

func TestEscapeClears(t *testing.T) {
	v := testValidator(t)
	press(v, tcell.KeyUp, tcell.KeyUp)

	if quit := v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); quit {
		t.Fatal("Escape quit")
	}
	if got := v.Lines()[3]; got != "Sequence: (empty)" {
		t.Errorf("sequence line = %q", got)
	}

	// A fresh cycle starts after clearing.
	press(v, tcell.KeyUp, tcell.KeyDown)
	if v.last.Key != "A" {
		t.Errorf("after clear got %s, want exact A", v.last)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		quit bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"Q", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
		{"resize", tcell.NewEventResize(80, 24), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testValidator(t)
			if got := v.HandleEvent(tt.ev); got != tt.quit {
				t.Errorf("HandleEvent() = %v, want %v", got, tt.quit)
			}
			if v.hasLast {
				t.Error("non-arrow event fed the matcher")
			}
		})
	}
}

func TestRunScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(100, 10)

	for _, ev := range []tcell.Event{
		arrow(tcell.KeyUp, tcell.ModNone),
		arrow(tcell.KeyDown, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	} {
		if err := screen.PostEvent(ev); err != nil {
			t.Fatal(err)
		}
	}

	v := testValidator(t)
	if err := v.RunScreen(screen); err != nil {
		t.Fatalf("RunScreen() error = %v", err)
	}

	var row strings.Builder
	for x := 0; x < len("MATCH: Alpha [A]"); x++ {
		r, _, _, _ := screen.GetContent(x, 5) //nolint:staticcheck // GetContent is the correct API
		row.WriteRune(r)
	}
	if got := row.String(); got != "MATCH: Alpha [A]" {
		t.Errorf("screen row 5 = %q", got)
	}
}
