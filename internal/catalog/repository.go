package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
)

// Repository owns the process-wide catalog snapshot. The first EnsureLoaded call loads it;
// callers arriving during that load share its result. A failed load is not cached.
type Repository struct {
	source Source
	log    *logger.Logger
	group  singleflight.Group

	mu          sync.RWMutex
	catalog     *domain.Catalog
	subscribers map[chan *domain.Catalog]struct{}
}

func NewRepository(source Source, log *logger.Logger) *Repository {
	return &Repository{
		source:      source,
		log:         log,
		subscribers: make(map[chan *domain.Catalog]struct{}),
	}
}

// Current returns the loaded catalog, or nil before the first successful load.
func (r *Repository) Current() *domain.Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.catalog
}

// EnsureLoaded returns the cached catalog, loading it if needed. Cancelling ctx abandons the
// wait but not the in-flight load, which still completes for other callers.
func (r *Repository) EnsureLoaded(ctx context.Context) (*domain.Catalog, error) {
	if c := r.Current(); c != nil {
		return c, nil
	}

	ch := r.group.DoChan("catalog", func() (interface{}, error) {
		if c := r.Current(); c != nil {
			return c, nil
		}
		started := time.Now()
		c, err := Load(context.WithoutCancel(ctx), r.source, r.log)
		if err != nil {
			r.log.Error("catalog load failed", "source", r.source.String(), "error", err)
			return nil, err
		}
		r.log.Info("catalog loaded", "source", r.source.String(), "entries", len(c.Entries), "duration", time.Since(started))
		r.publish(c)
		return c, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Catalog), nil
	}
}

// Observe streams catalog snapshots: the current one first (nil if not loaded yet), then each
// newly loaded one. Slow receivers only see the latest value. The channel closes when ctx ends.
func (r *Repository) Observe(ctx context.Context) <-chan *domain.Catalog {
	ch := make(chan *domain.Catalog, 1)

	r.mu.Lock()
	ch <- r.catalog
	r.subscribers[ch] = struct{}{}
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.subscribers, ch)
		close(ch)
		r.mu.Unlock()
	}()
	return ch
}

func (r *Repository) publish(c *domain.Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = c
	for ch := range r.subscribers {
		select {
		case ch <- c:
		default:
			// drop the stale snapshot so the receiver sees the newest one
			select {
			case <-ch:
			default:
			}
			ch <- c
		}
	}
}
