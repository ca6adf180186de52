// Package config holds the replay settings.
//
// A Store keeps one Snapshot and replaces it atomically. Writes are
// validated first and applied only if every field is valid, so readers
// never see a half-applied update.
//
// Settings are exchanged with the host as a flat map:
//
//	key_delay       = 0.03        # seconds, in (0, 1]
//	modifier_key    = "LEFTCTRL"  # evdev key name
//	hold_modifier   = true
//	direction_keys  = "arrows"    # or "wasd"
//
//	[custom_sequences]
//	MyStratagem = ["UP", "LEFT", "DOWN"]
//
// Any other key is kept as-is and written back unchanged. The same map is
// the on-disk TOML format, and STRATAGEM_* environment variables override
// individual keys.
package config
