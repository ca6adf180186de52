package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ReadFile reads a TOML settings file into a flat map.
// A missing file returns nil, nil.
func ReadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode parses TOML settings. source names the data in errors.
func Decode(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return m, nil
}

// Encode renders a settings map as TOML.
func Encode(m map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadFile replaces the store's settings with the file at path, with
// environment overrides applied on top. Keys missing from both return to
// their defaults. A missing file loads the defaults. On error the store is
// unchanged.
func (s *Store) LoadFile(path string) error {
	m, err := ReadFile(path)
	if err != nil {
		return err
	}
	if m == nil {
		m = make(map[string]any)
	}
	env, err := EnvOverrides(os.LookupEnv)
	if err != nil {
		return err
	}
	for k, v := range env {
		m[k] = v
	}

	p, err := ParseSettings(m)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return s.Reset(p)
}

// SaveFile writes the current settings to path atomically.
func (s *Store) SaveFile(path string) error {
	data, err := Encode(s.Settings())
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// DefaultPath returns the settings file location under the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "stratagem", "settings.toml"), nil
}
