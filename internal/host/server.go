package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/stratagem/internal/app"
	"github.com/dshills/stratagem/internal/config"
	"github.com/dshills/stratagem/internal/input/key"
	"github.com/dshills/stratagem/internal/input/matcher"
)

// Logger is the logging the server needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Server answers protocol commands for one application.
type Server struct {
	app    *app.Application
	logger Logger

	// mu serializes response lines from the reader and fire goroutines.
	mu sync.Mutex
	w  io.Writer

	wg sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a server writing responses to w.
func NewServer(a *app.Application, w io.Writer, opts ...Option) *Server {
	s := &Server{app: a, w: w, logger: nopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve reads commands from r until EOF, quit or ctx is done, then waits
// for fires in progress.
func (s *Server) Serve(ctx context.Context, r io.Reader) error {
	defer s.Wait()

	reader := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := reader.ReadString('\n')
		if line != "" {
			if quit := s.Handle(ctx, line); quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading commands: %w", err)
		}
	}
}

// Wait blocks until every fire started by Handle has answered.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Handle runs one command line. It returns true for quit.
func (s *Server) Handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]
	s.logger.Debug("command %q", strings.TrimSpace(line))

	switch cmd {
	case "dir":
		s.direction(ctx, args)
	case "mod":
		s.modifier(args)
	case "hero":
		s.hero(args)
	case "cancel":
		s.app.Cancel()
		s.reply("ok")
	case "abort":
		s.app.Abort()
		s.reply("ok")
	case "fire":
		if len(args) != 1 {
			s.replyError("usage: fire <KEY>")
			return false
		}
		s.fire(ctx, args[0])
	case "list":
		s.list()
	case "get":
		s.get()
	case "set":
		s.set(args)
	case "save":
		if err := s.app.SaveSettings(); err != nil {
			s.replyError(err.Error())
			return false
		}
		s.reply("ok")
	case "metrics":
		s.metrics()
	case "quit":
		return true
	default:
		s.replyError(fmt.Sprintf("unknown command %q", cmd))
	}
	return false
}

func (s *Server) direction(ctx context.Context, args []string) {
	if len(args) == 0 || len(args) > 2 || (len(args) == 2 && args[1] != "mod") {
		s.replyError("usage: dir <UP|DOWN|LEFT|RIGHT> [mod]")
		return
	}
	d, ok := key.ParseDirection(args[0])
	if !ok {
		s.replyError(fmt.Sprintf("invalid direction %q", args[0]))
		return
	}

	res := s.app.MatchDirection(d, len(args) == 2)
	switch res.Kind {
	case matcher.Exact:
		s.reply("exact " + res.Key)
		s.fire(ctx, res.Key)
	case matcher.Partial:
		s.reply("partial " + strings.Join(res.Candidates, ","))
	default:
		s.reply("nomatch")
	}
}

func (s *Server) modifier(args []string) {
	if len(args) == 0 || len(args) > 2 {
		s.replyError("usage: mod <down|up> [NAME]")
		return
	}
	m := key.ModUnknown
	if len(args) == 2 {
		parsed, ok := key.ParseModifier(args[1])
		if !ok {
			s.replyError(fmt.Sprintf("unknown modifier %q", args[1]))
			return
		}
		m = parsed
	}

	switch args[0] {
	case "down":
		s.app.HandleModifier(true, m)
	case "up":
		s.app.HandleModifier(false, m)
	default:
		s.replyError("usage: mod <down|up> [NAME]")
		return
	}
	s.reply("ok")
}

func (s *Server) hero(args []string) {
	var on bool
	switch {
	case len(args) == 0:
		on = s.app.ToggleHeroMode()
	case args[0] == "on" || args[0] == "off":
		on = args[0] == "on"
		s.app.SetHeroMode(on)
	default:
		s.replyError("usage: hero [on|off]")
		return
	}
	if on {
		s.reply("hero on")
	} else {
		s.reply("hero off")
	}
}

// fire replays k in the background and answers when it finishes.
func (s *Server) fire(ctx context.Context, k string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		status, err := s.app.Fire(ctx, k)
		switch {
		case err != nil:
			s.replyError(err.Error())
		case status == app.Busy:
			s.reply("busy " + k)
		default:
			s.reply("fired " + k)
		}
	}()
}

func (s *Server) list() {
	for _, e := range s.app.Dictionary().Entries() {
		s.reply(fmt.Sprintf("stratagem %s %s %s", e.Key, strings.Join(e.Sequence.Tokens(), ","), e.DisplayName()))
	}
	s.reply("ok")
}

func (s *Server) get() {
	settings := s.app.Store().Settings()
	names := make([]string, 0, len(settings))
	for k := range settings {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		if k == config.KeyCustomSequences {
			continue
		}
		s.reply(fmt.Sprintf("setting %s=%v", k, settings[k]))
	}
	snap := s.app.Store().Get()
	for _, k := range snap.CustomKeys() {
		s.reply(fmt.Sprintf("setting %s.%s=%s", config.KeyCustomSequences, k, strings.Join(snap.CustomSequences[k].Tokens(), ",")))
	}
	s.reply("ok")
}

// set applies name=value pairs. custom_sequences.KEY=UP,DOWN adds or
// replaces one custom sequence; an empty value removes it.
func (s *Server) set(args []string) {
	if len(args) == 0 {
		s.replyError("usage: set <name>=<value>...")
		return
	}

	m := make(map[string]any, len(args))
	var custom map[string]any
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			s.replyError(fmt.Sprintf("malformed setting %q", arg))
			return
		}

		if ck, isCustom := strings.CutPrefix(name, config.KeyCustomSequences+"."); isCustom {
			if custom == nil {
				custom = s.currentCustom()
			}
			if value == "" {
				delete(custom, ck)
			} else {
				custom[ck] = value
			}
			continue
		}
		m[name] = value
	}
	if custom != nil {
		m[config.KeyCustomSequences] = custom
	}

	if err := s.app.Store().SetSettings(m); err != nil {
		s.logger.Warn("set: %v", err)
		s.replyError(err.Error())
		return
	}
	s.reply("ok")
}

func (s *Server) currentCustom() map[string]any {
	snap := s.app.Store().Get()
	out := make(map[string]any, len(snap.CustomSequences))
	for k, seq := range snap.CustomSequences {
		out[k] = seq.Tokens()
	}
	return out
}

func (s *Server) metrics() {
	m := s.app.Metrics()
	s.reply(fmt.Sprintf("metrics started=%d completed=%d failed=%d cancelled=%d busy=%d unavailable=%d last=%s peak=%s",
		m.Started, m.Completed, m.Failed, m.Cancelled, m.RejectedBusy, m.Unavailable, m.LastDuration, m.PeakDuration))
}

func (s *Server) reply(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}

func (s *Server) replyError(msg string) {
	s.reply("error " + strings.ReplaceAll(msg, "\n", "; "))
}
