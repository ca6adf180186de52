package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dshills/stratagem/internal/input/key"
)

func TestParseSettings(t *testing.T) {
	p, err := ParseSettings(map[string]any{
		"key_delay":      0.05,
		"modifier_key":   "KEY_LEFTALT",
		"hold_modifier":  false,
		"direction_keys": "wasd",
		"custom_sequences": map[string]any{
			"Mine":  []any{"UP", "DOWN"},
			"Other": "LEFT, RIGHT",
		},
		"button_title": "Reinforce",
	})
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}

	if *p.KeyDelay != 50*time.Millisecond {
		t.Errorf("KeyDelay = %v", *p.KeyDelay)
	}
	if *p.ModifierKey != key.CodeLeftAlt {
		t.Errorf("ModifierKey = %v", *p.ModifierKey)
	}
	if *p.HoldModifier {
		t.Error("HoldModifier = true")
	}
	if *p.Layout != key.LayoutWASD {
		t.Errorf("Layout = %v", *p.Layout)
	}
	if !p.CustomSequences["Other"].Equals(key.Sequence{key.Left, key.Right}) {
		t.Errorf("Other = %v", p.CustomSequences["Other"])
	}
	if p.Extra["button_title"] != "Reinforce" {
		t.Errorf("Extra = %v", p.Extra)
	}
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    map[string]any
		field string
	}{
		{"delay zero", map[string]any{"key_delay": 0.0}, KeyKeyDelay},
		{"delay too large", map[string]any{"key_delay": 1.5}, KeyKeyDelay},
		{"delay wrong type", map[string]any{"key_delay": true}, KeyKeyDelay},
		{"delay garbage string", map[string]any{"key_delay": "soon"}, KeyKeyDelay},
		{"unknown modifier", map[string]any{"modifier_key": "KEY_HYPER"}, KeyModifierKey},
		{"modifier wrong type", map[string]any{"modifier_key": 29}, KeyModifierKey},
		{"hold wrong type", map[string]any{"hold_modifier": 1.0}, KeyHoldModifier},
		{"bad layout", map[string]any{"direction_keys": "ijkl"}, KeyDirectionKeys},
		{"bad token", map[string]any{"custom_sequences": map[string]any{"X": []any{"UP", "up"}}}, "custom_sequences.X"},
		{"empty sequence", map[string]any{"custom_sequences": map[string]any{"X": []any{}}}, "custom_sequences.X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings(tt.in)
			var cfgErr *InvalidConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want InvalidConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestParseSettingsDelayForms(t *testing.T) {
	tests := []struct {
		in   any
		want time.Duration
	}{
		{0.03, 30 * time.Millisecond},
		{int64(1), time.Second},
		{"0.02", 20 * time.Millisecond},
		{"45ms", 45 * time.Millisecond},
		{15 * time.Millisecond, 15 * time.Millisecond},
	}
	for _, tt := range tests {
		p, err := ParseSettings(map[string]any{"key_delay": tt.in})
		if err != nil {
			t.Errorf("key_delay=%v: %v", tt.in, err)
			continue
		}
		if *p.KeyDelay != tt.want {
			t.Errorf("key_delay=%v: got %v, want %v", tt.in, *p.KeyDelay, tt.want)
		}
	}
}

func TestSettingsPassthroughRoundTrip(t *testing.T) {
	s := NewStore()
	in := map[string]any{
		"key_delay":     0.04,
		"hold_modifier": true,
		"unknown":       map[string]any{"nested": "value"},
	}
	if err := s.SetSettings(in); err != nil {
		t.Fatal(err)
	}

	out := s.Settings()
	if !reflect.DeepEqual(out["unknown"], in["unknown"]) {
		t.Errorf("passthrough changed: %v", out["unknown"])
	}
	if out["key_delay"] != 0.04 {
		t.Errorf("key_delay = %v", out["key_delay"])
	}
	if out["modifier_key"] != "LEFTCTRL" {
		t.Errorf("modifier_key = %v", out["modifier_key"])
	}
	if out["direction_keys"] != "arrows" {
		t.Errorf("direction_keys = %v", out["direction_keys"])
	}
}

func TestSetSettingsRejectsWholeMap(t *testing.T) {
	s := NewStore()
	err := s.SetSettings(map[string]any{
		"hold_modifier": false,
		"key_delay":     5.0,
		"extra":         1,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	snap := s.Get()
	if !snap.HoldModifier || snap.Extra != nil {
		t.Errorf("partial apply: %+v", snap)
	}
}
