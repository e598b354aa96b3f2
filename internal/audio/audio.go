// Package audio plays short synthesized cues for game events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a game event with a sound.
type Cue int

const (
	CueFire Cue = iota
	CueHit
	CueCaught
	CueCleared
	CueVictory
)

func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueHit:
		return "hit"
	case CueCaught:
		return "caught"
	case CueCleared:
		return "cleared"
	case CueVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Player plays cues. Play must not block.
type Player interface {
	Play(c Cue)
	Close()
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Close()   {}

// note is one tone of a cue.
type note struct {
	freq float64 // 0 is a rest
	dur  time.Duration
}

var cues = map[Cue][]note{
	CueFire:    {{880, 40 * time.Millisecond}, {660, 30 * time.Millisecond}},
	CueHit:     {{220, 60 * time.Millisecond}},
	CueCaught:  {{392, 120 * time.Millisecond}, {311, 120 * time.Millisecond}, {196, 260 * time.Millisecond}},
	CueCleared: {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 160 * time.Millisecond}},
	CueVictory: {
		{523, 110 * time.Millisecond}, {659, 110 * time.Millisecond}, {784, 110 * time.Millisecond},
		{0, 60 * time.Millisecond}, {1047, 320 * time.Millisecond},
	},
}

// Length returns the duration of a cue.
func Length(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cues[c] {
		d += n.dur
	}
	return d
}

// Sound builds the streamer of a cue at the given rate. Unknown cues are
// silent and empty.
func Sound(c Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes := cues[c]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := rate.N(n.dur)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Speaker plays cues through the system audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewSpeaker creates an uninitialized speaker.
func NewSpeaker(logger *log.Logger) *Speaker {
	if logger == nil {
		logger = log.Default()
	}
	return &Speaker{
		mixer:  &beep.Mixer{},
		volume: 0.25,
		logger: logger,
	}
}

// Initialize opens the audio device.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play queues a cue on the mixer.
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	st, err := Sound(c, sampleRate, s.volume)
	if err != nil {
		s.logger.Warn("cannot build cue", "cue", c, "err", err)
		return
	}

	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences the mixer and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	s.initialized = false
}

// Open returns a ready Player. A muted game or a missing audio device gets
// a Nop player.
func Open(mute bool, logger *log.Logger) Player {
	if mute {
		return Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}

	s := NewSpeaker(logger)
	if err := s.Initialize(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return Nop{}
	}
	return s
}
