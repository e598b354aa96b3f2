package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stealth/internal/audio"
	"github.com/vovakirdan/tui-stealth/internal/config"
	"github.com/vovakirdan/tui-stealth/internal/game"
	"github.com/vovakirdan/tui-stealth/internal/metrics"
	"github.com/vovakirdan/tui-stealth/internal/registry"
	"github.com/vovakirdan/tui-stealth/internal/stage"
	"github.com/vovakirdan/tui-stealth/internal/storage"
)

// Env is everything a front end needs to start campaigns.
type Env struct {
	Stages  []stage.Stage
	Config  config.StealthConfig
	Store   *storage.Store // optional
	Logger  *log.Logger
	Metrics *metrics.Collector // optional
	Audio   audio.Player       // optional
}

// NewSession creates a fresh campaign session wired to the environment.
func (e *Env) NewSession() (*game.Session, error) {
	opts := []game.Option{
		game.WithLogger(e.Logger),
		game.WithMetrics(e.Metrics),
		game.WithAudio(e.Audio),
		game.WithHook(registry.Table()),
	}
	if e.Store != nil {
		opts = append(opts, game.WithRecorder(e.Store))
	}
	return game.New(e.Stages, e.Config, opts...)
}

// bestCampaign returns the stored campaign record, or zero.
func (e *Env) bestCampaign() time.Duration {
	if e.Store == nil {
		return 0
	}
	best, err := e.Store.BestTime(storage.TrackCampaign)
	if err != nil {
		e.logger().Warn("cannot read best time", "err", err)
		return 0
	}
	return best
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}
