package lua

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stratagem/internal/input/dictionary"
	"github.com/dshills/stratagem/internal/input/key"
)

// Loader runs stratagem scripts and collects what they declare.
type Loader struct {
	opts []StateOption
}

// NewLoader creates a loader. opts apply to every script's state.
func NewLoader(opts ...StateOption) *Loader {
	return &Loader{opts: opts}
}

// collector receives stratagem() calls from one script.
type collector struct {
	source  string
	entries []dictionary.Entry
	errs    []error
}

// LoadString runs code as a script named name.
//
// Declarations with bad sequences are reported with the dictionary's error
// types and skipped. A script that fails to run returns a *ScriptError and
// no entries.
func (l *Loader) LoadString(name, code string) ([]dictionary.Entry, error) {
	return l.load(name, func(s *State) error {
		return s.DoString(name, code)
	})
}

// LoadFile runs the script at path.
func (l *Loader) LoadFile(path string) ([]dictionary.Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ScriptError{Script: path, Err: err}
	}
	return l.load(filepath.Base(path), func(s *State) error {
		return s.DoFile(path)
	})
}

// LoadDir runs every *.lua file in dir in name order.
// A missing directory yields no entries and no error.
func (l *Loader) LoadDir(dir string) ([]dictionary.Entry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var (
		all  []dictionary.Entry
		errs []error
	)
	for _, p := range paths {
		entries, err := l.LoadFile(p)
		all = append(all, entries...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return all, errors.Join(errs...)
}

func (l *Loader) load(name string, run func(*State) error) ([]dictionary.Entry, error) {
	s := NewState(l.opts...)
	defer s.Close()

	c := &collector{source: dictionary.SourceScript + ":" + name}
	for _, d := range key.Directions {
		s.SetGlobalString(d.String(), d.String())
	}
	s.SetGlobalFunc("stratagem", c.declare)

	if err := run(s); err != nil {
		return nil, &ScriptError{Script: name, Err: err}
	}
	return c.entries, errors.Join(c.errs...)
}

// declare implements stratagem(key, tokens [, name]) and
// stratagem{key=..., sequence=..., name=...}.
func (c *collector) declare(L *lua.LState) int {
	var (
		k      string
		tokens *lua.LTable
		name   string
	)

	if tbl, ok := L.Get(1).(*lua.LTable); ok && L.GetTop() == 1 {
		k = lua.LVAsString(tbl.RawGetString("key"))
		name = lua.LVAsString(tbl.RawGetString("name"))
		seq, isTable := tbl.RawGetString("sequence").(*lua.LTable)
		if !isTable {
			L.ArgError(1, "sequence must be a table of directions")
			return 0
		}
		tokens = seq
	} else {
		k = L.CheckString(1)
		tokens = L.CheckTable(2)
		name = L.OptString(3, "")
	}

	if k == "" {
		L.ArgError(1, "stratagem key must not be empty")
		return 0
	}

	var list []string
	n := tokens.Len()
	for i := 1; i <= n; i++ {
		v := tokens.RawGetInt(i)
		s, ok := v.(lua.LString)
		if !ok {
			c.errs = append(c.errs, &dictionary.InvalidSequenceError{
				Key: k,
				Err: &key.InvalidDirectionTokenError{Index: i - 1, Token: fmt.Sprint(v)},
			})
			return 0
		}
		list = append(list, string(s))
	}

	seq, err := key.ParseTokens(list)
	if err != nil {
		if errors.Is(err, key.ErrEmptySequence) {
			c.errs = append(c.errs, &dictionary.EmptySequenceError{Key: k})
		} else {
			c.errs = append(c.errs, &dictionary.InvalidSequenceError{Key: k, Err: err})
		}
		return 0
	}

	c.entries = append(c.entries, dictionary.Entry{
		Key:      k,
		Name:     name,
		Sequence: seq,
		Source:   c.source,
	})
	return 0
}
