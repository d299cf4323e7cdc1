// Package fake is a hand-written, in-memory implementation of
// engineclient.Client, grounded on the teacher's MockEngine/MockConnection
// style (sarchlab/akita's mockengine.go, mockconnection.go): a small test
// double used by controller and telemetry tests, and by the --fake CLI flag
// for local smoke-testing without a live engine.
package fake

import (
	"fmt"
	"sync"
	"time"

	"github.com/sarchlab/euf-controller/internal/engineclient"
)

// Worker is a fake engineclient.Worker that records the commands issued to
// it.
type Worker struct {
	mu      sync.Mutex
	id      int
	enabled bool
	freqKHz int64
}

// NewWorker creates a fake worker with the given local ID, initially
// enabled.
func NewWorker(id int) *Worker {
	return &Worker{id: id, enabled: true}
}

// LocalID returns the worker's logical CPU ID.
func (w *Worker) LocalID() int { return w.id }

// Enable marks the worker enabled.
func (w *Worker) Enable() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.enabled = true

	return nil
}

// Disable marks the worker disabled.
func (w *Worker) Disable() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.enabled = false

	return nil
}

// SetFrequency records the requested frequency.
func (w *Worker) SetFrequency(kHz int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.freqKHz = kHz

	return nil
}

// Enabled reports the worker's last commanded enable state.
func (w *Worker) Enabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.enabled
}

// FreqKHz reports the worker's last commanded frequency.
func (w *Worker) FreqKHz() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.freqKHz
}

// Counter is a fake engineclient.Counter backed by a fixed series of points
// a test can push onto.
type Counter struct {
	name   string
	points []engineclient.Point
}

// NewCounter creates a fake counter with the given dist name.
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// DistName returns the counter's dist name.
func (c *Counter) DistName() string { return c.name }

// Monitor returns a Monitor over c's points.
func (c *Counter) Monitor() engineclient.Monitor { return (*monitor)(c) }

// Push appends a reading, as if the engine had just produced it.
func (c *Counter) Push(v float64) {
	c.points = append(c.points, engineclient.Point{Timestamp: time.Now(), Value: v})
}

type monitor Counter

func (m *monitor) Values(bool) ([]engineclient.Point, error) {
	return (*Counter)(m).points, nil
}

// Benchmark is a fake engineclient.Benchmark with a mutable state/active
// pair a test can drive directly.
type Benchmark struct {
	state  string
	active bool
}

// NewBenchmark creates a fake benchmark in the given state.
func NewBenchmark(state string, active bool) *Benchmark {
	return &Benchmark{state: state, active: active}
}

// State returns the benchmark's lifecycle state.
func (b *Benchmark) State() string { return b.state }

// Active returns the benchmark's active flag.
func (b *Benchmark) Active() bool { return b.active }

// SetState updates the benchmark's lifecycle state and active flag, as the
// engine would between ticks.
func (b *Benchmark) SetState(state string, active bool) {
	b.state = state
	b.active = active
}

// Profile is a fake engineclient.Profile.
type Profile struct{ name string }

// NewProfile creates a fake profile with the given name.
func NewProfile(name string) *Profile { return &Profile{name: name} }

// Name returns the profile's name.
func (p *Profile) Name() string { return p.name }

// Session is a fake engineclient.Session.
type Session struct {
	name       string
	benchmarks map[string]engineclient.Benchmark
	profiles   map[string]engineclient.Profile
	updates    int
}

// NewSession creates a fake session with the given name.
func NewSession(name string) *Session {
	return &Session{
		name:       name,
		benchmarks: make(map[string]engineclient.Benchmark),
		profiles:   make(map[string]engineclient.Profile),
	}
}

// AddBenchmark registers a benchmark under id.
func (s *Session) AddBenchmark(id string, b engineclient.Benchmark) {
	s.benchmarks[id] = b
}

// AddProfile registers a profile under id.
func (s *Session) AddProfile(id string, p engineclient.Profile) {
	s.profiles[id] = p
}

// Name returns the session's name.
func (s *Session) Name() string { return s.name }

// Benchmarks returns the session's benchmark table.
func (s *Session) Benchmarks() map[string]engineclient.Benchmark { return s.benchmarks }

// Profiles returns the session's profile table.
func (s *Session) Profiles() map[string]engineclient.Profile { return s.profiles }

// ActivateBenchmark activates the benchmark with the given id, or returns an
// error if it is unknown.
func (s *Session) ActivateBenchmark(id string) error {
	if _, ok := s.benchmarks[id]; !ok {
		return fmt.Errorf("fake: unknown benchmark %q", id)
	}

	return nil
}

// ActivateProfile activates the profile with the given id, or returns an
// error if it is unknown.
func (s *Session) ActivateProfile(id string) error {
	if _, ok := s.profiles[id]; !ok {
		return fmt.Errorf("fake: unknown profile %q", id)
	}

	return nil
}

// Update counts how many times a refresh was forced.
func (s *Session) Update() error {
	s.updates++

	return nil
}

// Updates reports how many times Update was called.
func (s *Session) Updates() int { return s.updates }

// Client is a fake engineclient.Client wired up entirely in memory.
type Client struct {
	mu       sync.Mutex
	workers  []engineclient.Worker
	counters []engineclient.Counter
	sessions map[string]engineclient.Session
	emLoop   bool
	emAdapt  bool
}

// NewClient builds an empty fake client.
func NewClient() *Client {
	return &Client{sessions: make(map[string]engineclient.Session)}
}

// AddWorker registers a worker.
func (c *Client) AddWorker(w engineclient.Worker) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.workers = append(c.workers, w)
}

// AddCounter registers a counter.
func (c *Client) AddCounter(counter engineclient.Counter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counters = append(c.counters, counter)
}

// AddSession registers a session.
func (c *Client) AddSession(s engineclient.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions[s.Name()] = s
}

// Workers returns every registered worker.
func (c *Client) Workers() ([]engineclient.Worker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]engineclient.Worker(nil), c.workers...), nil
}

// Counters returns every registered counter.
func (c *Client) Counters() ([]engineclient.Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]engineclient.Counter(nil), c.counters...), nil
}

// Session returns the named session, or an error if it is unknown.
func (c *Client) Session(name string) (engineclient.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[name]
	if !ok {
		return nil, fmt.Errorf("fake: unknown session %q", name)
	}

	return s, nil
}

// SessionNames returns every registered session's name.
func (c *Client) SessionNames() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.sessions))
	for name := range c.sessions {
		names = append(names, name)
	}

	return names, nil
}

// EnergyManagement records the requested engine-control-loop setting.
func (c *Client) EnergyManagement(loop, adapt bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.emLoop = loop
	c.emAdapt = adapt

	return nil
}

// EnergyManagementArgs reports the last arguments passed to
// EnergyManagement.
func (c *Client) EnergyManagementArgs() (loop, adapt bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.emLoop, c.emAdapt
}
