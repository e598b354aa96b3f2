// Package metrics exposes simulation counters to Prometheus.
//
// All Collector methods are safe on a nil receiver so callers can run
// without metrics.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stage results.
const (
	ResultCleared = "cleared"
	ResultCaught  = "caught"
	ResultAborted = "aborted"
)

// Collector bundles the game's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	SimTicks           prometheus.Counter
	SimTickDuration    prometheus.Histogram
	ObstaclesActive    prometheus.Gauge
	ProjectilesFired   prometheus.Counter
	ProjectilesDropped prometheus.Counter
	ObstacleHits       prometheus.Counter
	ObstaclesDestroyed prometheus.Counter
	StageResults       *prometheus.CounterVec
}

// New registers the metrics against reg, defaulting to the global registry
// when reg is nil.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stealth_sim_ticks_total",
		Help: "Number of obstacle simulation ticks executed.",
	}), "stealth_sim_ticks_total")
	if err != nil {
		return nil, err
	}

	tickDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "stealth_sim_tick_duration_seconds",
		Help:    "Time spent holding the world lock during one simulation tick.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	}), "stealth_sim_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	active, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stealth_obstacles_active",
		Help: "Active obstacles in the running stage.",
	}), "stealth_obstacles_active")
	if err != nil {
		return nil, err
	}

	fired, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stealth_projectiles_fired_total",
		Help: "Projectiles spawned by the player.",
	}), "stealth_projectiles_fired_total")
	if err != nil {
		return nil, err
	}

	dropped, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stealth_projectiles_dropped_total",
		Help: "Fire requests dropped because the projectile pool was full.",
	}), "stealth_projectiles_dropped_total")
	if err != nil {
		return nil, err
	}

	hits, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stealth_obstacle_hits_total",
		Help: "Damaging projectile hits on obstacles.",
	}), "stealth_obstacle_hits_total")
	if err != nil {
		return nil, err
	}

	destroyed, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stealth_obstacles_destroyed_total",
		Help: "Obstacles destroyed by projectiles.",
	}), "stealth_obstacles_destroyed_total")
	if err != nil {
		return nil, err
	}

	results, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stealth_stage_results_total",
		Help: "Finished stages, labeled by result.",
	}, []string{"result"}), "stealth_stage_results_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		SimTicks:           ticks,
		SimTickDuration:    tickDuration,
		ObstaclesActive:    active,
		ProjectilesFired:   fired,
		ProjectilesDropped: dropped,
		ObstacleHits:       hits,
		ObstaclesDestroyed: destroyed,
		StageResults:       results,
	}, nil
}

// Gatherer returns the gatherer backing Handler.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveTick records one simulation tick.
func (c *Collector) ObserveTick(d time.Duration, active int) {
	if c == nil {
		return
	}
	c.SimTicks.Inc()
	c.SimTickDuration.Observe(d.Seconds())
	c.ObstaclesActive.Set(float64(active))
}

// IncFired counts a spawned projectile.
func (c *Collector) IncFired() {
	if c == nil {
		return
	}
	c.ProjectilesFired.Inc()
}

// IncDropped counts a fire request lost to a full pool.
func (c *Collector) IncDropped() {
	if c == nil {
		return
	}
	c.ProjectilesDropped.Inc()
}

// AddHits counts damaging hits and kills from one projectile pass.
func (c *Collector) AddHits(hits, kills int) {
	if c == nil {
		return
	}
	if hits > 0 {
		c.ObstacleHits.Add(float64(hits))
	}
	if kills > 0 {
		c.ObstaclesDestroyed.Add(float64(kills))
	}
}

// StageFinished counts a stage outcome.
func (c *Collector) StageFinished(result string) {
	if c == nil {
		return
	}
	c.StageResults.WithLabelValues(result).Inc()
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metrics: %s already registered with incompatible type", name)
		}
		return nil, fmt.Errorf("metrics: register %s: %w", name, err)
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metrics: %s already registered with incompatible type", name)
		}
		return nil, fmt.Errorf("metrics: register %s: %w", name, err)
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metrics: %s already registered with incompatible type", name)
		}
		return nil, fmt.Errorf("metrics: register %s: %w", name, err)
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metrics: %s already registered with incompatible type", name)
		}
		return nil, fmt.Errorf("metrics: register %s: %w", name, err)
	}
	return hist, nil
}
