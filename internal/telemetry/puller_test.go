package telemetry_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/euf-controller/internal/engineclient/fake"
	"github.com/sarchlab/euf-controller/internal/model"
	"github.com/sarchlab/euf-controller/internal/telemetry"
)

type stubRAPL struct {
	snapshots []telemetry.Snapshot
	i         int
	err       error
}

func (s *stubRAPL) Read() (telemetry.Snapshot, error) {
	if s.err != nil {
		return telemetry.Snapshot{}, s.err
	}

	snap := s.snapshots[s.i]
	if s.i < len(s.snapshots)-1 {
		s.i++
	}

	return snap, nil
}

var _ = Describe("Puller", func() {
	It("reports Due after RefreshInterval has elapsed", func() {
		p := telemetry.New(fake.NewClient(), nil)
		p.RefreshInterval = time.Second

		now := time.Now()
		Expect(p.Due(now)).To(BeTrue())

		p.Pull(now, &model.Configuration{TPS: 1, PowerW: 1})
		Expect(p.Due(now.Add(500 * time.Millisecond))).To(BeFalse())
		Expect(p.Due(now.Add(time.Second))).To(BeTrue())
	})

	It("fills actual=0 when rapl is unavailable", func() {
		client := fake.NewClient()
		counter := fake.NewCounter("Tasks.Finished")
		counter.Push(42)
		client.AddCounter(counter)

		p := telemetry.New(client, nil)
		now := time.Now()
		active := &model.Configuration{TPS: 100, PowerW: 7}

		p.Pull(now, active)

		samples := p.PowerSamples(now.Add(time.Minute))
		Expect(samples).To(HaveLen(1))
		Expect(samples[0].Actual).To(Equal(0.0))
		Expect(samples[0].Estimate).To(Equal(7.0))
	})

	It("computes wattage from the delta between two rapl snapshots", func() {
		t0 := time.Now()
		t1 := t0.Add(time.Second)

		rapl := &stubRAPL{snapshots: []telemetry.Snapshot{
			{Timestamp: t0, Domains: map[string]telemetry.Reading{
				telemetry.DomainPackage0: {Joules: 10},
				telemetry.DomainDRAM:     {Joules: 2},
			}},
			{Timestamp: t1, Domains: map[string]telemetry.Reading{
				telemetry.DomainPackage0: {Joules: 20},
				telemetry.DomainDRAM:     {Joules: 4},
			}},
		}}

		client := fake.NewClient()
		p := telemetry.New(client, rapl)
		active := &model.Configuration{TPS: 100, PowerW: 9}

		p.Pull(t0, active) // first snapshot, baseline only
		p.Pull(t1, active)

		samples := p.PowerSamples(t1.Add(time.Minute))
		Expect(samples).To(HaveLen(2))
		Expect(samples[1].Actual).To(BeNumerically("~", 12.0, 1e-9)) // (10+2)W over 1s
	})

	It("trims samples older than the history window", func() {
		client := fake.NewClient()
		p := telemetry.New(client, nil)
		p.HistoryWindow = 2 * time.Second
		p.RefreshInterval = time.Second

		base := time.Now()
		active := &model.Configuration{TPS: 1, PowerW: 1}

		for i := 0; i < 5; i++ {
			p.Pull(base.Add(time.Duration(i)*time.Second), active)
		}

		samples := p.PowerSamples(base.Add(4 * time.Second))
		Expect(len(samples)).To(BeNumerically("<=", 3))
	})
})
