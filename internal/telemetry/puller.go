// Package telemetry is the Telemetry Puller (TP) of spec.md §4.6: on a
// fixed cadence it reads the engine's task counters and RAPL energy
// counters and appends samples to two bounded, ordered series.
package telemetry

import (
	"errors"
	"log"
	"time"

	"github.com/sarchlab/euf-controller/internal/engineclient"
	"github.com/sarchlab/euf-controller/internal/model"
)

// ErrRAPLUnavailable marks a RAPL read that could not produce a snapshot.
// Matches model.ErrTelemetryUnavailable's "never fatal" classification.
var ErrRAPLUnavailable = errors.New("telemetry: rapl unavailable")

// DefaultRefreshInterval is the spec.md §4.6 default pull cadence.
const DefaultRefreshInterval = 1 * time.Second

// DefaultHistoryWindow is the spec.md §3 default retention window.
const DefaultHistoryWindow = 300 * time.Second

// Puller owns the power and throughput telemetry series and decides, on
// each controller tick, whether it is due to pull fresh samples.
type Puller struct {
	RefreshInterval time.Duration
	HistoryWindow   time.Duration

	client engineclient.Client
	rapl   RAPLReader

	lastPull  time.Time
	prevSnap  Snapshot
	haveSnap  bool
	power     model.Series
	throughput model.Series
}

// New builds a Puller reading task counters from client and energy counters
// from rapl. rapl may be nil, in which case every power sample is recorded
// with actual=0, per spec.md §4.6's "If RAPL is unavailable" clause.
func New(client engineclient.Client, rapl RAPLReader) *Puller {
	return &Puller{
		RefreshInterval: DefaultRefreshInterval,
		HistoryWindow:   DefaultHistoryWindow,
		client:          client,
		rapl:            rapl,
	}
}

// Due reports whether now - last pull >= RefreshInterval.
func (p *Puller) Due(now time.Time) bool {
	return now.Sub(p.lastPull) >= p.RefreshInterval
}

// Pull reads the Tasks.Finished counter and a RAPL snapshot and appends one
// sample to each series, tagged against activeConfig's modelled tps/power.
// Counter read failures drop the throughput sample silently; RAPL failures
// fill the power sample's actual value with 0. Neither failure is
// propagated to the caller, per spec.md §4.6/§7.
func (p *Puller) Pull(now time.Time, activeConfig *model.Configuration) {
	p.lastPull = now

	if activeConfig == nil {
		return
	}

	p.pullThroughput(now, activeConfig.TPS)
	p.pullPower(now, activeConfig.PowerW)
}

func (p *Puller) pullThroughput(now time.Time, estimate float64) {
	actual, ok := p.readFinishedCounter()
	if !ok {
		return
	}

	p.throughput.Append(model.Sample{Timestamp: now, Actual: actual, Estimate: estimate})
}

func (p *Puller) readFinishedCounter() (float64, bool) {
	counters, err := p.client.Counters()
	if err != nil {
		log.Printf("telemetry: reading counters: %v", err)
		return 0, false
	}

	for _, c := range counters {
		if c.DistName() != engineclient.CounterTasksFinished {
			continue
		}

		points, err := c.Monitor().Values(true)
		if err != nil || len(points) == 0 {
			return 0, false
		}

		return points[len(points)-1].Value, true
	}

	return 0, false
}

func (p *Puller) pullPower(now time.Time, estimate float64) {
	if p.rapl == nil {
		p.power.Append(model.Sample{Timestamp: now, Actual: 0, Estimate: estimate})
		return
	}

	snap, err := p.rapl.Read()
	if err != nil {
		log.Printf("telemetry: reading rapl: %v", err)
		p.power.Append(model.Sample{Timestamp: now, Actual: 0, Estimate: estimate})

		return
	}

	if !p.haveSnap {
		p.prevSnap = snap
		p.haveSnap = true
		p.power.Append(model.Sample{Timestamp: now, Actual: 0, Estimate: estimate})

		return
	}

	delta := snap.Sub(p.prevSnap)
	p.prevSnap = snap

	p.power.Append(model.Sample{
		Timestamp: delta.Timestamp,
		Actual:    delta.PackageAndDRAMWatts(),
		Estimate:  estimate,
	})
}

// PowerSamples returns the power series trimmed to HistoryWindow as of now.
func (p *Puller) PowerSamples(now time.Time) []model.Sample {
	return p.power.Trim(now, p.HistoryWindow)
}

// ThroughputSamples returns the throughput series trimmed to HistoryWindow
// as of now.
func (p *Puller) ThroughputSamples(now time.Time) []model.Sample {
	return p.throughput.Trim(now, p.HistoryWindow)
}
