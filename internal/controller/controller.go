// Package controller is the Controller (CTL) of spec.md §4.8: the tick-
// driven state machine that owns the active configuration, decides when to
// reselect and adapt, and commits configuration changes to the engine.
package controller

import (
	"log"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/euf-controller/internal/benchstate"
	"github.com/sarchlab/euf-controller/internal/configcache"
	"github.com/sarchlab/euf-controller/internal/engineclient"
	"github.com/sarchlab/euf-controller/internal/hwmodel"
	"github.com/sarchlab/euf-controller/internal/model"
	"github.com/sarchlab/euf-controller/internal/telemetry"
)

// TickPeriod is the nominal cadence of the control loop, per spec.md §4.8.
const TickPeriod = 1 * time.Second

// AdaptThreshold is the relative deviation between the needed and the
// active configuration's tps that triggers an adaptation reselect, per
// spec.md §4.8 step 3.
const AdaptThreshold = 0.05

// Controller is the central state machine of the energy-utility feedback
// loop. All exported methods are safe for concurrent use: a single mutex
// guards ControllerState for the full body of a tick and for the duration
// of each mutation or read, per spec.md §5.
type Controller struct {
	mu    sync.Mutex
	state model.ControllerState

	cache            *configcache.Cache
	client           engineclient.Client
	puller           *telemetry.Puller
	watcher          *benchstate.Watcher
	synth            Synthetic
	maxPhysicalCores int

	sessionName string
}

// New builds a Controller. axes must be the same hardware-model tuning axes
// used to build cache, since SYNTH_MAX/SYNTH_IDLE and the worker-enable
// calculation are both derived from them.
func New(
	client engineclient.Client,
	cache *configcache.Cache,
	puller *telemetry.Puller,
	axes hwmodel.Axes,
) *Controller {
	c := &Controller{
		cache:            cache,
		client:           client,
		puller:           puller,
		synth:            NewSynthetic(axes),
		maxPhysicalCores: axes.MaxCores(),
	}
	c.state.Enabled = true

	return c
}

// SetEnabled sets the controller's desired-mode flag, mutated by the
// control API and consumed at the next tick boundary (spec.md §5).
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Enabled = enabled
	c.state.PendingUpdate = true
}

// Enabled reports the controller's current desired-mode flag.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Enabled
}

// SelectSession switches which engine session the benchmark state watcher
// observes. The next tick's refresh is always treated as changed, matching
// the first-refresh-after-startup rule of spec.md §4.7.
func (c *Controller) SelectSession(name string) error {
	session, err := c.client.Session(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessionName = name
	c.watcher = benchstate.New(session)
	c.state.PendingUpdate = true

	return nil
}

// ActivateBenchmark asks the current session to activate the named
// benchmark, and requests a reselect at the next tick.
func (c *Controller) ActivateBenchmark(sessionName, benchmarkID string) error {
	session, err := c.client.Session(sessionName)
	if err != nil {
		return err
	}

	if err := session.ActivateBenchmark(benchmarkID); err != nil {
		return err
	}

	c.mu.Lock()
	c.state.PendingUpdate = true
	c.mu.Unlock()

	return nil
}

// ActivateProfile asks the current session to activate the named profile,
// and requests a reselect at the next tick.
func (c *Controller) ActivateProfile(sessionName, profileID string) error {
	session, err := c.client.Session(sessionName)
	if err != nil {
		return err
	}

	if err := session.ActivateProfile(profileID); err != nil {
		return err
	}

	c.mu.Lock()
	c.state.PendingUpdate = true
	c.mu.Unlock()

	return nil
}

// SessionNames returns every session name the engine currently knows about,
// for the control API's /benchmark/sessions route.
func (c *Controller) SessionNames() []string {
	names, err := c.client.SessionNames()
	if err != nil {
		log.Printf("controller: listing session names: %v", err)
		return nil
	}

	return names
}

// ConfigCacheBuildID identifies which configcache.Build call populated the
// candidate sets this controller selects from, surfaced by the control
// API's /configurations payload so an operator can tell a cache was rebuilt
// after a model reload.
func (c *Controller) ConfigCacheBuildID() string {
	return c.cache.BuildID().String()
}

// Snapshot returns a coherent copy of the controller's state, safe to read
// without holding the controller's lock, for the HTTP control surface.
func (c *Controller) Snapshot() model.ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Snapshot()
}

// Run executes the tick loop until stop is closed. Between ticks it sleeps
// up to TickPeriod, returning early if stop closes, matching the
// cancellation semantics of spec.md §5.
func (c *Controller) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			c.Tick(now)
		}
	}
}

// Tick executes one iteration of the per-tick procedure of spec.md §4.8:
// state refresh, reselection, adaptation check, telemetry pull, in that
// total order.
func (c *Controller) Tick(now time.Time) {
	tickID := xid.New().String()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher == nil {
		return
	}

	changed, snapshot := c.watcher.Refresh()
	c.state.LastState = snapshot
	c.state.LastStateKnown = true

	mustReselect := changed || c.state.PendingUpdate

	if mustReselect {
		c.recomputeCandidates(snapshot)

		best := Select(c.state.CurrentCandidates, nil, nil)
		c.commit(best, tickID)
		c.state.PendingUpdate = false
	}

	c.checkAdaptation(tickID)

	if c.puller != nil && c.puller.Due(now) {
		c.puller.Pull(now, c.state.ActiveConfig)
	}
}

// recomputeCandidates implements the mode table of spec.md §4.8.
func (c *Controller) recomputeCandidates(snapshot model.BenchmarkState) {
	switch {
	case !c.state.Enabled:
		c.state.CurrentCandidates = []model.Configuration{c.synth.Max}
		c.state.AllCandidates = c.state.CurrentCandidates

	case snapshot.AnyLoading():
		c.state.CurrentCandidates = []model.Configuration{c.synth.Max}
		c.state.AllCandidates = c.state.CurrentCandidates

	default:
		if name, ok := snapshot.Running(); ok {
			if set, found := c.cache.Lookup(name); found {
				c.state.CurrentCandidates = set.Pareto
				c.state.AllCandidates = set.All

				return
			}

			log.Printf("controller: no configuration cache entry for %q, falling back to max-performance", name)
			c.state.CurrentCandidates = []model.Configuration{c.synth.Max}
			c.state.AllCandidates = c.state.CurrentCandidates

			return
		}

		candidates := []model.Configuration{c.synth.Idle}
		if c.state.ActiveConfig != nil && !c.state.ActiveConfig.Equal(c.synth.Idle) {
			candidates = append(candidates, *c.state.ActiveConfig)
		}

		c.state.CurrentCandidates = candidates
		c.state.AllCandidates = candidates
	}
}

// checkAdaptation implements spec.md §4.8 step 3.
func (c *Controller) checkAdaptation(tickID string) {
	if c.state.ActiveConfig == nil || len(c.state.CurrentCandidates) == 1 {
		return
	}

	needed, ok := c.neededThroughput()
	if !ok {
		return
	}

	active := c.state.ActiveConfig.TPS

	if absFloat(needed-active) <= AdaptThreshold*needed {
		return
	}

	best := Select(c.state.CurrentCandidates, &needed, c.state.ActiveConfig)
	c.commit(best, tickID)
}

func (c *Controller) neededThroughput() (float64, bool) {
	counters, err := c.client.Counters()
	if err != nil {
		log.Printf("controller: reading counters: %v", err)
		return 0, false
	}

	var started, active float64

	haveAny := false

	for _, counter := range counters {
		var target *float64

		switch counter.DistName() {
		case engineclient.CounterTasksStarted:
			target = &started
		case engineclient.CounterTasksActive:
			target = &active
		default:
			continue
		}

		points, err := counter.Monitor().Values(true)
		if err != nil || len(points) == 0 {
			continue
		}

		*target = points[len(points)-1].Value
		haveAny = true
	}

	if !haveAny {
		return 0, false
	}

	if started > active {
		return started, true
	}

	return active, true
}

// commit implements the commit semantics of spec.md §4.8: a configuration
// equal (by (freq,cores,ht)) to the active one only updates the reference
// (P7, idempotent commit); otherwise every worker is retuned and
// enabled/disabled to match new, and engine failures are logged and
// swallowed rather than propagated.
func (c *Controller) commit(newConfig model.Configuration, tickID string) {
	if c.state.ActiveConfig != nil && newConfig.Equal(*c.state.ActiveConfig) {
		cfg := newConfig
		c.state.ActiveConfig = &cfg

		return
	}

	enabledIDs := c.enabledWorkerIDs(newConfig)

	workers, err := c.client.Workers()
	if err != nil {
		log.Printf("controller[%s]: commit: listing workers: %v", tickID, err)
	}

	for _, w := range workers {
		if err := w.SetFrequency(newConfig.FreqKHz); err != nil {
			log.Printf("controller[%s]: commit: set frequency on worker %d: %v", tickID, w.LocalID(), err)
		}

		if enabledIDs[w.LocalID()] {
			if err := w.Enable(); err != nil {
				log.Printf("controller[%s]: commit: enable worker %d: %v", tickID, w.LocalID(), err)
			}
		} else {
			if err := w.Disable(); err != nil {
				log.Printf("controller[%s]: commit: disable worker %d: %v", tickID, w.LocalID(), err)
			}
		}
	}

	cfg := newConfig
	c.state.ActiveConfig = &cfg
}

func (c *Controller) enabledWorkerIDs(cfg model.Configuration) map[int]bool {
	ids := make(map[int]bool, cfg.Cores*2)

	for i := 0; i < cfg.Cores; i++ {
		ids[i] = true

		if cfg.HT {
			ids[i+c.maxPhysicalCores] = true
		}
	}

	return ids
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}

	return f
}
