// Package filter memoises the shared blur filters used by toast shapes.
package filter

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/aretw0/sileo/pkg/domain"
)

// Definer installs a filter on the rendering surface.
type Definer interface {
	DefineFilter(f domain.Filter)
}

// Pool hands out filter ids keyed by blur radius. The first request for a
// radius defines the filter; every later or concurrent request gets the same id.
// Entries are never removed.
type Pool struct {
	definer Definer
	group   singleflight.Group

	mu  sync.RWMutex
	ids map[float64]string
}

// NewPool creates a pool that defines filters on d.
func NewPool(d Definer) *Pool {
	return &Pool{
		definer: d,
		ids:     make(map[float64]string),
	}
}

// ID returns the id of the filter for blur, defining it on first use.
func (p *Pool) ID(blur float64) string {
	p.mu.RLock()
	id, ok := p.ids[blur]
	p.mu.RUnlock()
	if ok {
		return id
	}

	key := strconv.FormatFloat(blur, 'f', -1, 64)
	v, _, _ := p.group.Do(key, func() (any, error) {
		p.mu.RLock()
		id, ok := p.ids[blur]
		p.mu.RUnlock()
		if ok {
			return id, nil
		}

		id = "sileo-gooey-" + key
		if p.definer != nil {
			p.definer.DefineFilter(domain.Filter{ID: id, Blur: blur})
		}

		p.mu.Lock()
		p.ids[blur] = id
		p.mu.Unlock()
		return id, nil
	})
	return v.(string)
}

// Len returns the number of filters defined so far.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.ids)
}
