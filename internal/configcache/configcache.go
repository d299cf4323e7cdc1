// Package configcache is the Configuration Cache (CC) of spec.md §4.5: a
// per-benchmark memoised {all, pareto} pair built once at startup and
// thereafter read-only.
package configcache

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/sarchlab/euf-controller/internal/configgen"
	"github.com/sarchlab/euf-controller/internal/model"
	"github.com/sarchlab/euf-controller/internal/pareto"
)

// Cache is the read-only, per-benchmark ConfigurationSet store.
type Cache struct {
	mu      sync.RWMutex
	sets    map[string]model.ConfigurationSet
	buildID uuid.UUID
}

// Build runs configgen+pareto for every name in names and memoises the
// result. A benchmark whose generation fails (model.ErrUnknownBenchmark) is
// skipped and logged, per spec.md §7; every other benchmark is still built.
// Build tags the resulting cache with a fresh build ID (surfaced by the
// control API's /configurations payload) so an operator can tell a cache was
// rebuilt after a model reload.
func Build(gen *configgen.Generator, names []string, objectives []pareto.Objective) *Cache {
	c := &Cache{
		sets:    make(map[string]model.ConfigurationSet, len(names)),
		buildID: uuid.New(),
	}

	for _, name := range names {
		all, err := gen.Generate(name)
		if err != nil {
			log.Printf("configcache: skipping benchmark %q: %v", name, err)
			continue
		}

		c.sets[name] = model.ConfigurationSet{
			All:    all,
			Pareto: pareto.Reduce(all, objectives),
		}
	}

	return c
}

// Lookup returns the memoised ConfigurationSet for name and true, or the
// zero value and false if name has no cache entry (the benchmark's
// generation failed at build time, or it was never discovered).
func (c *Cache) Lookup(name string) (model.ConfigurationSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set, ok := c.sets[name]

	return set, ok
}

// BuildID identifies which Build() call populated this cache.
func (c *Cache) BuildID() uuid.UUID {
	return c.buildID
}

// Names returns every benchmark name with a cache entry.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.sets))
	for k := range c.sets {
		names = append(names, k)
	}

	return names
}
