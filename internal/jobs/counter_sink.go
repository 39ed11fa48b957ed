package jobs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/store"
)

// CounterSink periodically drains the pending view and like deltas from
// the fast counter into the content rows. Losing one drain window on a
// crash is acceptable; the counters are statistics, not ledgers.
type CounterSink struct {
	counter cache.Counter
	store   store.Store
	cron    string
}

func NewCounterSink(schedule string, s store.Store, counter cache.Counter) *CounterSink {
	return &CounterSink{
		counter: counter,
		store:   s,
		cron:    schedule,
	}
}

func (c *CounterSink) ID() string {
	return "counter_sink"
}

func (c *CounterSink) Name() string {
	return "counter_sink"
}

func (c *CounterSink) Schedule() string {
	return c.cron
}

func (c *CounterSink) Run() {
	ctx := context.Background()
	c.sink(ctx, cache.ViewCountKey, func(delta int64) (int64, int64) { return delta, 0 })
	c.sink(ctx, cache.LikeCountKey, func(delta int64) (int64, int64) { return 0, delta })
}

func (c *CounterSink) sink(ctx context.Context, key string, split func(delta int64) (view, like int64)) {
	deltas, err := c.counter.Drain(ctx, key)
	if err != nil {
		logrus.Errorf("failed to drain counter %s: %v", key, err)
		return
	}
	if len(deltas) == 0 {
		return
	}

	synced := 0
	for contentID, delta := range deltas {
		if delta == 0 {
			continue
		}
		viewDelta, likeDelta := split(delta)
		if err := c.store.AddContentCounts(ctx, contentID, viewDelta, likeDelta); err != nil {
			// The delta is gone from the counter; log loudly and move on.
			logrus.Errorf("failed to sink counter %s for content %s: %v", key, contentID, err)
			continue
		}
		synced++
	}
	logrus.Infof("synced %d entries from counter %s", synced, key)
}
