package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/stratagem/internal/config"
	"github.com/dshills/stratagem/internal/input/dictionary"
	"github.com/dshills/stratagem/internal/input/key"
	"github.com/dshills/stratagem/internal/input/matcher"
	"github.com/dshills/stratagem/internal/logging"
	"github.com/dshills/stratagem/internal/plugin/lua"
	"github.com/dshills/stratagem/internal/replay"
	"github.com/dshills/stratagem/internal/sink"
)

// Options configures the application.
type Options struct {
	// DataPath is a JSON or YAML stratagem table. Empty uses the built-in
	// table.
	DataPath string

	// ScriptDir holds Lua scripts declaring extra stratagems.
	ScriptDir string

	// SettingsPath is the TOML settings file. Empty uses the defaults and
	// environment overrides only.
	SettingsPath string

	// Watch reloads the settings and data files when they change.
	Watch bool

	// Sink is the virtual keyboard. Nil opens the platform device.
	Sink sink.Sink

	// DeviceName names the platform device when Sink is nil.
	DeviceName string

	// Logger defaults to a discarding logger.
	Logger *logging.Logger

	// Lock is shared with any other engine typing on the same keyboard.
	Lock *replay.Lock

	// Sleeper replaces real pauses; used by tests.
	Sleeper replay.Sleeper
}

// FireStatus is the outcome of a fire request that did not fail.
type FireStatus uint8

const (
	// Fired means the sequence was typed.
	Fired FireStatus = iota

	// Busy means another replay was running and the request was dropped.
	Busy
)

// String returns the status name.
func (s FireStatus) String() string {
	if s == Busy {
		return "busy"
	}
	return "fired"
}

// Application owns the dictionary, matcher, replay engine and settings.
type Application struct {
	opts   Options
	logger *logging.Logger

	store   *config.Store
	dict    atomic.Pointer[dictionary.Dictionary]
	matcher *matcher.Matcher
	engine  *replay.Engine
	sink    sink.Sink
	watcher *config.Watcher
	scripts *lua.Loader

	// reloadMu serializes dictionary rebuilds.
	reloadMu sync.Mutex

	hero   atomic.Bool
	closed atomic.Bool
}

// New builds an application. Invalid settings or data entries are logged
// and skipped; only a failure to start a required component is an error.
func New(opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	app := &Application{
		opts:    opts,
		logger:  logger,
		store:   config.NewStore(),
		scripts: lua.NewLoader(),
	}

	if err := app.loadSettings(); err != nil {
		logger.Warn("settings: %v; using defaults", err)
	}

	app.sink = opts.Sink
	if app.sink == nil {
		app.sink = sink.NewDevice(opts.DeviceName)
	}
	if u, ok := app.sink.(*sink.Unavailable); ok {
		logger.Error("virtual keyboard unavailable: %s", u.Reason())
	}

	engineOpts := []replay.Option{
		replay.WithLogger(logger.WithComponent("replay")),
		replay.WithLock(opts.Lock),
		replay.WithSleeper(opts.Sleeper),
	}
	app.engine = replay.NewEngine(app.sink, engineOpts...)
	app.matcher = matcher.New(app)

	if err := app.Reload(); err != nil {
		logger.Warn("stratagem table: %v", err)
	}
	if app.Dictionary().Len() == 0 {
		return nil, &InitError{Component: "dictionary", Err: errors.New("no usable stratagems")}
	}

	// Custom sequences live in the settings, so a settings change
	// rebuilds the dictionary.
	app.store.OnChange(func(config.Snapshot) {
		if err := app.Reload(); err != nil {
			logger.Warn("stratagem table: %v", err)
		}
	})

	if opts.Watch {
		if err := app.startWatcher(); err != nil {
			return nil, &InitError{Component: "watcher", Err: err}
		}
	}

	return app, nil
}

func (app *Application) loadSettings() error {
	if app.opts.SettingsPath != "" {
		return app.store.LoadFile(app.opts.SettingsPath)
	}
	env, err := config.EnvOverrides(os.LookupEnv)
	if err != nil || env == nil {
		return err
	}
	return app.store.SetSettings(env)
}

func (app *Application) startWatcher() error {
	w, err := config.NewWatcher(config.WithWatcherLogger(app.logger.WithComponent("watcher")))
	if err != nil {
		return err
	}
	// A path that cannot be watched only loses live reload.
	if app.opts.SettingsPath != "" {
		if err := w.WatchStore(app.opts.SettingsPath, app.store); err != nil {
			app.logger.Warn("not watching %s: %v", app.opts.SettingsPath, err)
		}
	}
	if app.opts.DataPath != "" {
		if err := w.Watch(app.opts.DataPath, app.reloadData); err != nil {
			app.logger.Warn("not watching %s: %v", app.opts.DataPath, err)
		}
	}
	app.watcher = w
	return nil
}

// Dictionary returns the current dictionary. It implements matcher.Source.
func (app *Application) Dictionary() *dictionary.Dictionary {
	if d := app.dict.Load(); d != nil {
		return d
	}
	return dictionary.Empty()
}

// Store returns the settings store.
func (app *Application) Store() *config.Store {
	return app.store
}

// Matcher returns the input matcher.
func (app *Application) Matcher() *matcher.Matcher {
	return app.matcher
}

// Engine returns the replay engine.
func (app *Application) Engine() *replay.Engine {
	return app.engine
}

// Reload rebuilds the dictionary from the data source, scripts and custom
// sequences. Earlier sources win on key conflicts. The new dictionary is
// swapped in atomically; a match in progress keeps the old one until its
// cycle ends.
//
// If the data source cannot be read at all, the current dictionary stays.
// Otherwise invalid entries are skipped and returned as one error.
func (app *Application) Reload() error {
	_, err := app.reload()
	return err
}

// reload reports whether a new dictionary was swapped in.
func (app *Application) reload() (bool, error) {
	app.reloadMu.Lock()
	defer app.reloadMu.Unlock()

	var errs []error

	base, err := app.loadBase()
	if base == nil {
		return false, err
	}
	if err != nil {
		errs = append(errs, err)
	}

	var extra []dictionary.Entry
	if app.opts.ScriptDir != "" {
		scripted, err := app.scripts.LoadDir(app.opts.ScriptDir)
		extra = append(extra, scripted...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	snap := app.store.Get()
	for _, k := range snap.CustomKeys() {
		extra = append(extra, dictionary.Entry{
			Key:      k,
			Sequence: snap.CustomSequences[k],
			Source:   dictionary.SourceConfig,
		})
	}

	dict := base
	if len(extra) > 0 {
		dict, err = base.Merge(extra)
		if err != nil {
			errs = append(errs, err)
		}
	}

	app.dict.Store(dict)
	app.logger.Debug("dictionary loaded: %d stratagems", dict.Len())
	return true, errors.Join(errs...)
}

// reloadData is the watcher callback for the data file.
func (app *Application) reloadData(string) error {
	swapped, err := app.reload()
	if err != nil && swapped {
		return &config.PartialReloadError{Err: err}
	}
	return err
}

func (app *Application) loadBase() (*dictionary.Dictionary, error) {
	if app.opts.DataPath == "" {
		return dictionary.Default()
	}
	return dictionary.LoadFile(app.opts.DataPath)
}

// MatchDirection feeds one direction to the matcher. The caller fires
// res.Key on an exact match.
func (app *Application) MatchDirection(d key.Direction, modifierActive bool) matcher.Result {
	res := app.matcher.OnDirection(d, modifierActive)
	app.logger.Debug("direction %s: %s (mode %s)", d, res, res.Mode)
	return res
}

// HandleModifier records a modifier key edge.
func (app *Application) HandleModifier(down bool, m key.Modifier) {
	if down {
		app.matcher.OnModifierDown(m)
		return
	}
	app.matcher.OnModifierUp(m)
}

// Cancel clears the sequence in progress.
func (app *Application) Cancel() {
	app.matcher.Reset()
}

// Abort stops the replay in progress. Held keys are still released.
func (app *Application) Abort() {
	app.engine.Cancel()
}

// HeroMode reports whether the stratagem menu is assumed open.
func (app *Application) HeroMode() bool {
	return app.hero.Load()
}

// SetHeroMode sets hero mode.
func (app *Application) SetHeroMode(on bool) {
	app.hero.Store(on)
	app.logger.Info("hero mode %s", onOff(on))
}

// ToggleHeroMode flips hero mode and returns the new value.
func (app *Application) ToggleHeroMode() bool {
	for {
		old := app.hero.Load()
		if app.hero.CompareAndSwap(old, !old) {
			app.logger.Info("hero mode %s", onOff(!old))
			return !old
		}
	}
}

// Fire types the stratagem k with the current settings.
//
// A request that arrives while another replay runs is dropped: Fire
// returns Busy and a nil error, and the drop is counted in the engine
// metrics. An unavailable device fails every call with
// replay.ErrSinkUnavailable.
func (app *Application) Fire(ctx context.Context, k string) (FireStatus, error) {
	if app.closed.Load() {
		return Fired, ErrClosed
	}

	entry, ok := app.Dictionary().Get(k)
	if !ok {
		return Fired, &OperationError{Op: "fire", Target: k, Err: ErrUnknownStratagem}
	}

	snap := app.store.Get()
	job := replay.Job{
		Key:          entry.Key,
		Sequence:     entry.Sequence,
		Modifier:     snap.ModifierKey,
		HoldModifier: snap.HoldModifier,
		HeroMode:     app.hero.Load(),
		KeyDelay:     snap.KeyDelay,
		Layout:       snap.Layout,
	}

	err := app.engine.Execute(ctx, job)
	switch {
	case err == nil:
		app.logger.Info("fired %s", entry.DisplayName())
		return Fired, nil
	case errors.Is(err, replay.ErrAlreadyExecuting):
		app.logger.Debug("dropped %s: replay in progress", k)
		return Busy, nil
	case errors.Is(err, replay.ErrSinkUnavailable):
		app.logger.Error("cannot fire %s: %v", k, err)
		return Fired, err
	default:
		app.logger.Error("fire %s: %v", k, err)
		return Fired, &OperationError{Op: "fire", Target: k, Err: err}
	}
}

// SaveSettings writes the current settings to the settings file.
func (app *Application) SaveSettings() error {
	if app.opts.SettingsPath == "" {
		return &OperationError{Op: "save settings", Err: errors.New("no settings file configured")}
	}
	if err := app.store.SaveFile(app.opts.SettingsPath); err != nil {
		return &OperationError{Op: "save settings", Target: app.opts.SettingsPath, Err: err}
	}
	app.logger.Info("settings saved to %s", app.opts.SettingsPath)
	return nil
}

// Metrics returns the replay counters.
func (app *Application) Metrics() replay.MetricsSnapshot {
	return app.engine.Metrics().Snapshot()
}

// Available reports whether the virtual keyboard exists.
func (app *Application) Available() bool {
	return app.engine.Available()
}

// Close stops the watcher and destroys the virtual keyboard.
func (app *Application) Close() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}
	app.engine.Cancel()

	var errs []error
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing watcher: %w", err))
		}
	}
	if err := app.sink.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing device: %w", err))
	}
	return errors.Join(errs...)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
