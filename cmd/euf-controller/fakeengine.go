package main

import (
	"github.com/sarchlab/euf-controller/internal/engineclient"
	"github.com/sarchlab/euf-controller/internal/engineclient/fake"
	"github.com/sarchlab/euf-controller/internal/model"
	"github.com/sarchlab/euf-controller/internal/workload"
)

// seedFakeEngine populates client with workers, task counters, and a
// "default" session covering every benchmark workload.Default() knows
// about, each starting Ready and inactive. Used by the --fake CLI flag for
// local smoke-testing without a live engine (spec.md §1 treats the real
// engine client as an external collaborator out of scope for this module).
func seedFakeEngine(client *fake.Client) {
	const maxPhysicalCores = 4

	for i := 0; i < 2*maxPhysicalCores; i++ {
		client.AddWorker(fake.NewWorker(i))
	}

	client.AddCounter(fake.NewCounter(engineclient.CounterTasksStarted))
	client.AddCounter(fake.NewCounter(engineclient.CounterTasksActive))
	client.AddCounter(fake.NewCounter(engineclient.CounterTasksFinished))

	session := fake.NewSession("default")

	for _, name := range workload.Default().Names() {
		session.AddBenchmark(name, fake.NewBenchmark(string(model.LifecycleReady), false))
	}

	session.AddProfile("balanced", fake.NewProfile("balanced"))

	client.AddSession(session)
}
