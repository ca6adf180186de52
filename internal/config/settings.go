package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/stratagem/internal/input/key"
)

// Recognized settings keys.
const (
	KeyKeyDelay        = "key_delay"
	KeyModifierKey     = "modifier_key"
	KeyHoldModifier    = "hold_modifier"
	KeyDirectionKeys   = "direction_keys"
	KeyCustomSequences = "custom_sequences"
)

// recognized lists the keys ParseSettings consumes, in the order they are
// checked.
var recognized = []string{
	KeyKeyDelay,
	KeyModifierKey,
	KeyHoldModifier,
	KeyDirectionKeys,
	KeyCustomSequences,
}

func isRecognized(k string) bool {
	for _, r := range recognized {
		if r == k {
			return true
		}
	}
	return false
}

// ParseSettings converts a flat settings map into a Partial.
// Unrecognized keys are returned in Extra untouched. The first invalid
// recognized key fails the whole parse with an *InvalidConfigError.
func ParseSettings(m map[string]any) (Partial, error) {
	var p Partial

	if v, ok := m[KeyKeyDelay]; ok {
		d, err := parseDelay(v)
		if err != nil {
			return Partial{}, err
		}
		p.KeyDelay = &d
	}

	if v, ok := m[KeyModifierKey]; ok {
		name, isString := v.(string)
		if !isString {
			return Partial{}, typeError(KeyModifierKey, v, "string")
		}
		c, known := key.CodeFromName(name)
		if !known {
			return Partial{}, &InvalidConfigError{Field: KeyModifierKey, Value: name, Reason: "unknown key name"}
		}
		p.ModifierKey = &c
	}

	if v, ok := m[KeyHoldModifier]; ok {
		b, err := parseBool(KeyHoldModifier, v)
		if err != nil {
			return Partial{}, err
		}
		p.HoldModifier = &b
	}

	if v, ok := m[KeyDirectionKeys]; ok {
		name, isString := v.(string)
		if !isString {
			return Partial{}, typeError(KeyDirectionKeys, v, "string")
		}
		l, known := key.ParseLayout(name)
		if !known {
			return Partial{}, &InvalidConfigError{Field: KeyDirectionKeys, Value: name, Reason: `must be "arrows" or "wasd"`}
		}
		p.Layout = &l
	}

	if v, ok := m[KeyCustomSequences]; ok {
		seqs, err := parseCustomSequences(v)
		if err != nil {
			return Partial{}, err
		}
		p.CustomSequences = seqs
	}

	for k, v := range m {
		if isRecognized(k) {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[k] = v
	}

	if err := p.validate(); err != nil {
		return Partial{}, err
	}
	return p, nil
}

// Settings returns the snapshot as a flat settings map, passthrough keys
// included.
func (s Snapshot) Settings() map[string]any {
	out := make(map[string]any, len(s.Extra)+len(recognized))
	for k, v := range s.Extra {
		out[k] = v
	}
	out[KeyKeyDelay] = s.KeyDelay.Seconds()
	out[KeyModifierKey] = s.ModifierKey.Name()
	out[KeyHoldModifier] = s.HoldModifier
	out[KeyDirectionKeys] = s.Layout.String()
	if len(s.CustomSequences) > 0 {
		seqs := make(map[string]any, len(s.CustomSequences))
		for k, seq := range s.CustomSequences {
			seqs[k] = seq.Tokens()
		}
		out[KeyCustomSequences] = seqs
	}
	return out
}

// CustomKeys returns the custom sequence keys in sorted order.
func (s Snapshot) CustomKeys() []string {
	keys := make([]string, 0, len(s.CustomSequences))
	for k := range s.CustomSequences {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseDelay(v any) (time.Duration, error) {
	var secs float64
	switch x := v.(type) {
	case float64:
		secs = x
	case float32:
		secs = float64(x)
	case int:
		secs = float64(x)
	case int64:
		secs = float64(x)
	case time.Duration:
		if err := ValidateKeyDelay(x); err != nil {
			return 0, err
		}
		return x, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			d, derr := time.ParseDuration(strings.TrimSpace(x))
			if derr != nil {
				return 0, &InvalidConfigError{Field: KeyKeyDelay, Value: x, Reason: "not a number of seconds", Err: err}
			}
			if err := ValidateKeyDelay(d); err != nil {
				return 0, err
			}
			return d, nil
		}
		secs = f
	default:
		return 0, typeError(KeyKeyDelay, v, "number of seconds")
	}

	if math.IsNaN(secs) || secs <= 0 || secs > MaxKeyDelay.Seconds() {
		return 0, &InvalidConfigError{
			Field:  KeyKeyDelay,
			Value:  secs,
			Reason: "must be greater than 0 and at most 1 second",
		}
	}
	d := time.Duration(math.Round(secs * float64(time.Second)))
	if err := ValidateKeyDelay(d); err != nil {
		return 0, err
	}
	return d, nil
}

func parseBool(field string, v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, &InvalidConfigError{Field: field, Value: x, Reason: "not a boolean", Err: err}
		}
		return b, nil
	default:
		return false, typeError(field, v, "boolean")
	}
}

func parseCustomSequences(v any) (map[string]key.Sequence, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, typeError(KeyCustomSequences, v, "table of token lists")
	}

	out := make(map[string]key.Sequence, len(raw))
	for k, val := range raw {
		field := KeyCustomSequences + "." + k
		var tokens []string
		switch x := val.(type) {
		case string:
			tokens = strings.FieldsFunc(x, func(r rune) bool { return r == ' ' || r == ',' })
		case []string:
			tokens = x
		case []any:
			tokens = make([]string, 0, len(x))
			for _, t := range x {
				s, isString := t.(string)
				if !isString {
					return nil, typeError(field, t, "direction token")
				}
				tokens = append(tokens, s)
			}
		default:
			return nil, typeError(field, val, "list of direction tokens")
		}

		seq, err := key.ParseTokens(tokens)
		if err != nil {
			return nil, &InvalidConfigError{Field: field, Value: tokens, Reason: err.Error(), Err: err}
		}
		out[k] = seq
	}
	return out, nil
}

func typeError(field string, v any, want string) error {
	return &InvalidConfigError{
		Field:  field,
		Value:  v,
		Reason: fmt.Sprintf("expected %s, got %T", want, v),
	}
}
