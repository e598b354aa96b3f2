// Package game runs a campaign: one stage after another on a shared
// behavior engine and scheduler, until the player clears the last stage,
// gets caught, or quits.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stealth/internal/audio"
	"github.com/vovakirdan/tui-stealth/internal/behavior"
	"github.com/vovakirdan/tui-stealth/internal/collision"
	"github.com/vovakirdan/tui-stealth/internal/config"
	"github.com/vovakirdan/tui-stealth/internal/metrics"
	"github.com/vovakirdan/tui-stealth/internal/projectile"
	"github.com/vovakirdan/tui-stealth/internal/scheduler"
	"github.com/vovakirdan/tui-stealth/internal/stage"
	"github.com/vovakirdan/tui-stealth/internal/storage"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

var (
	// ErrNoStages is returned by New for an empty campaign.
	ErrNoStages = errors.New("game: no stages")
	// ErrStageRange is returned by StartStage for an index outside the campaign.
	ErrStageRange = errors.New("game: stage index out of range")
)

// Status is the state of the current stage.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	// StatusCleared means the goal was reached and more stages follow.
	StatusCleared
	// StatusVictory means the goal of the last stage was reached.
	StatusVictory
	StatusCaught
	// StatusAborted means the player quit mid-stage.
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusCleared:
		return "cleared"
	case StatusVictory:
		return "victory"
	case StatusCaught:
		return "caught"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Over reports whether the run has ended.
func (s Status) Over() bool {
	return s == StatusVictory || s == StatusCaught || s == StatusAborted
}

// Intent is the player's input for one frame.
type Intent struct {
	Move world.Facing
	Fire bool
}

// Recorder stores best times.
type Recorder interface {
	UpdateIfBetter(track string, d time.Duration) (storage.Update, error)
}

// Records are the times saved when a stage or the campaign was cleared.
type Records struct {
	Stage    storage.Update
	Campaign storage.Update // zero unless the whole campaign was cleared
}

// Session drives one run through a campaign. It is used from a single
// goroutine; the world it owns is shared with the scheduler.
type Session struct {
	stages  []stage.Stage
	cfg     config.StealthConfig
	logger  *log.Logger
	metrics *metrics.Collector
	audio   audio.Player
	records Recorder
	now     func() time.Time

	engine *behavior.Engine
	sched  *scheduler.Scheduler

	world  *world.World
	index  int
	first  int // index the run started at
	status Status
	paused bool

	// Stage timer: banked time plus the running segment since started.
	banked  time.Duration
	started time.Time
	total   time.Duration // sum of cleared stage times

	last Records
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics reports the run to c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Session) {
		s.metrics = c
	}
}

// WithAudio plays cues on p.
func WithAudio(p audio.Player) Option {
	return func(s *Session) {
		if p != nil {
			s.audio = p
		}
	}
}

// WithRecorder saves best times to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.records = r
	}
}

// WithHook sets the pursuit hook consulted for every pursuer.
func WithHook(h behavior.PursuitHook) Option {
	return func(s *Session) {
		s.engine = behavior.NewEngine(h)
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates an idle session over the given stages.
func New(stages []stage.Stage, cfg config.StealthConfig, opts ...Option) (*Session, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	s := &Session{
		stages: stages,
		cfg:    cfg,
		logger: log.Default(),
		audio:  audio.Nop{},
		now:    time.Now,
		engine: behavior.NewEngine(nil),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sched = scheduler.New(s.engine,
		scheduler.WithInterval(cfg.TickInterval()),
		scheduler.WithLogger(s.logger),
		scheduler.WithMetrics(s.metrics),
	)
	return s, nil
}

// Stages returns the number of stages in the campaign.
func (s *Session) Stages() int {
	return len(s.stages)
}

// Index returns the index of the current stage.
func (s *Session) Index() int {
	return s.index
}

// Stage returns the current stage.
func (s *Session) Stage() stage.Stage {
	return s.stages[s.index]
}

// Status returns the state of the current stage.
func (s *Session) Status() Status {
	return s.status
}

// Paused reports whether the simulation is suspended.
func (s *Session) Paused() bool {
	return s.paused
}

// Scheduler exposes the scheduler driving the obstacles.
func (s *Session) Scheduler() *scheduler.Scheduler {
	return s.sched
}

// LastRecords returns the records saved by the most recent clear.
func (s *Session) LastRecords() Records {
	return s.last
}

// StartStage builds the world of stage i and starts its obstacles. Any
// running stage is stopped first. The run continues only from a cleared
// stage; otherwise a new run begins at i.
func (s *Session) StartStage(i int) error {
	if i < 0 || i >= len(s.stages) {
		return fmt.Errorf("%w: %d", ErrStageRange, i)
	}
	s.halt()

	if s.status != StatusCleared {
		s.first = i
		s.total = 0
	}

	st := s.stages[i]
	w := st.NewWorld(s.cfg.Rules())

	s.world = w
	s.index = i
	s.paused = false
	s.banked = 0
	s.last = Records{}

	s.engine.SetPlayer(&w.Player)
	if err := s.sched.Start(w); err != nil {
		s.engine.SetPlayer(nil)
		s.status = StatusIdle
		return fmt.Errorf("game: cannot start stage %d: %w", st.ID, err)
	}

	s.started = s.now()
	s.status = StatusPlaying
	s.logger.Info("stage started", "stage", st.ID, "name", st.Name, "obstacles", len(st.Obstacles))
	return nil
}

// Next starts the stage after a cleared one.
func (s *Session) Next() error {
	if s.status != StatusCleared {
		return fmt.Errorf("game: no cleared stage to continue from (%s)", s.status)
	}
	return s.StartStage(s.index + 1)
}

// Frame applies one frame of input and resolves the stage. Movement and
// firing happen first, then projectiles advance, then the player is checked
// against obstacles and only then against the goal.
func (s *Session) Frame(in Intent) Status {
	if s.status != StatusPlaying || s.paused {
		return s.status
	}

	var (
		outcome = projectile.Outcome(-1)
		report  projectile.Report
		caught  bool
		goal    bool
	)
	s.world.Do(func(w *world.World) {
		if in.Move != world.FacingNone {
			w.MovePlayer(in.Move)
		}
		if in.Fire {
			outcome = projectile.Spawn(w)
		}
		report = projectile.Advance(w)

		caught = collision.PlayerCaught(w)
		if caught {
			w.Player.Alive = false
			return
		}
		goal = collision.GoalReached(w)
	})

	switch outcome {
	case projectile.Fired:
		s.metrics.IncFired()
		s.audio.Play(audio.CueFire)
	case projectile.PoolFull:
		s.metrics.IncDropped()
		s.logger.Debug("projectile dropped", "stage", s.Stage().ID)
	}
	if report.Hits > 0 {
		s.metrics.AddHits(report.Hits, report.Kills)
		s.audio.Play(audio.CueHit)
	}

	switch {
	case caught:
		s.finish(StatusCaught)
	case goal:
		s.clear()
	}
	return s.status
}

// View runs fn with the world locked. fn must not keep the pointer.
func (s *Session) View(fn func(w *world.World)) {
	if s.world == nil {
		return
	}
	s.world.Do(fn)
}

// Pause suspends the obstacles and the stage timer.
func (s *Session) Pause() {
	if s.status != StatusPlaying || s.paused {
		return
	}
	s.sched.Stop()
	s.banked += s.now().Sub(s.started)
	s.paused = true
}

// Resume restarts the obstacles after Pause.
func (s *Session) Resume() error {
	if s.status != StatusPlaying || !s.paused {
		return nil
	}
	if err := s.sched.Start(s.world); err != nil {
		return fmt.Errorf("game: cannot resume: %w", err)
	}
	s.started = s.now()
	s.paused = false
	return nil
}

// Elapsed returns the time spent on the current stage, pauses excluded.
func (s *Session) Elapsed() time.Duration {
	if s.status == StatusPlaying && !s.paused {
		return s.banked + s.now().Sub(s.started)
	}
	return s.banked
}

// Total returns the run time so far: cleared stages plus the current one.
func (s *Session) Total() time.Duration {
	switch s.status {
	case StatusPlaying, StatusCaught, StatusAborted:
		return s.total + s.Elapsed()
	default:
		return s.total
	}
}

// Abort ends the run as quit by the player.
func (s *Session) Abort() {
	if s.status != StatusPlaying {
		return
	}
	s.finish(StatusAborted)
}

// Close stops the scheduler. It is safe to call at any time.
func (s *Session) Close() {
	if s.status == StatusPlaying {
		s.finish(StatusAborted)
		return
	}
	s.halt()
}

func (s *Session) clear() {
	s.finish(StatusCleared)
	s.total += s.banked

	st := s.Stage()
	s.last.Stage = s.record(storage.StageTrack(st.ID), s.banked)

	if s.index < len(s.stages)-1 {
		s.audio.Play(audio.CueCleared)
		return
	}

	s.status = StatusVictory
	s.audio.Play(audio.CueVictory)
	if s.first == 0 {
		s.last.Campaign = s.record(storage.TrackCampaign, s.total)
	}
	s.logger.Info("campaign cleared", "total", s.total)
}

// finish stops the stage and freezes its timer.
func (s *Session) finish(status Status) {
	if !s.paused {
		s.banked += s.now().Sub(s.started)
	}
	s.halt()
	s.paused = false
	s.status = status

	st := s.Stage()
	switch status {
	case StatusCaught:
		s.metrics.StageFinished(metrics.ResultCaught)
		s.audio.Play(audio.CueCaught)
		s.logger.Info("caught", "stage", st.ID, "elapsed", s.banked)
	case StatusAborted:
		s.metrics.StageFinished(metrics.ResultAborted)
		s.logger.Info("stage aborted", "stage", st.ID)
	case StatusCleared:
		s.metrics.StageFinished(metrics.ResultCleared)
		s.logger.Info("stage cleared", "stage", st.ID, "elapsed", s.banked)
	}
}

// halt stops the obstacles and drops the player reference.
func (s *Session) halt() {
	s.sched.Stop()
	s.engine.SetPlayer(nil)
}

func (s *Session) record(track string, d time.Duration) storage.Update {
	if s.records == nil || d <= 0 {
		return storage.Update{Current: d}
	}
	u, err := s.records.UpdateIfBetter(track, d)
	if err != nil {
		s.logger.Warn("cannot save record", "track", track, "err", err)
		return storage.Update{Current: d}
	}
	if u.Improved {
		s.logger.Info("new record", "track", track, "time", u.Current, "previous", u.Previous)
	}
	return u
}
