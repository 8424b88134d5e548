package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/okra-platform/elemgen/internal/build"
)

// Regenerator runs one full generation pass
type Regenerator interface {
	Run(ctx context.Context) (*build.Report, error)
}

// Session runs a full regeneration at start and again after every burst of changes.
// Runs never overlap.
type Session struct {
	regen    Regenerator
	dir      string
	pattern  string
	debounce time.Duration
	logger   zerolog.Logger
	onRun    func(*build.Report, error)

	timerMu sync.Mutex
	timer   *time.Timer
	stopped bool
	// pending counts armed or firing debounce timers
	pending sync.WaitGroup
	runMu   sync.Mutex
}

// NewSession creates a session watching dir for files matching pattern
func NewSession(regen Regenerator, dir, pattern string, debounce time.Duration, logger zerolog.Logger) *Session {
	return &Session{
		regen:    regen,
		dir:      dir,
		pattern:  pattern,
		debounce: debounce,
		logger:   logger.With().Str("component", "watch").Logger(),
	}
}

// OnRun registers a callback receiving the outcome of every regeneration
func (s *Session) OnRun(fn func(*build.Report, error)) *Session {
	s.onRun = fn
	return s
}

// Start regenerates once, then watches until ctx is done
func (s *Session) Start(ctx context.Context) error {
	s.regenerate(ctx)

	fw, err := NewFileWatcher([]string{s.pattern}, []string{"*.tmp.*", ".*"}, func(path string, op fsnotify.Op) {
		s.logger.Debug().Str("path", path).Str("op", op.String()).Msg("schema change")
		s.schedule(ctx)
	}, s.logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(s.dir); err != nil {
		return err
	}

	err = fw.Start(ctx)
	s.stop()
	return err
}

// schedule (re)arms the debounce timer
func (s *Session) schedule(ctx context.Context) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if s.stopped {
		return
	}
	if s.timer != nil && s.timer.Stop() {
		s.pending.Done()
	}
	s.pending.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() {
		defer s.pending.Done()
		s.regenerate(ctx)
	})
}

// stop disarms the debounce timer and waits for a regeneration that already fired
func (s *Session) stop() {
	s.timerMu.Lock()
	s.stopped = true
	if s.timer != nil && s.timer.Stop() {
		s.pending.Done()
	}
	s.timerMu.Unlock()

	s.pending.Wait()
}

func (s *Session) regenerate(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	report, err := s.regen.Run(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("regeneration failed")
	}
	if s.onRun != nil {
		s.onRun(report, err)
	}
}
