package rate

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/ratelimit"
)

// Jitter emits at most limit ticks per period on Chan until ctx is done.
type Jitter struct {
	ch    chan struct{}
	l     ratelimit.Limiter
	limit int
}

func NewJitter(ctx context.Context, limit int, per time.Duration, clk clock.Clock) *Jitter {
	if limit < 1 {
		limit = 1
	}
	if per <= 0 {
		per = time.Second
	}
	if clk == nil {
		clk = clock.New()
	}
	brst := int(float64(limit) * 0.1)
	if brst < 1 {
		brst = 1
	}
	jitter := &Jitter{
		limit: limit,
		ch:    make(chan struct{}, brst),
		l:     ratelimit.New(limit, ratelimit.Per(per), ratelimit.WithClock(clk), ratelimit.WithoutSlack),
	}
	go jitter.provider(ctx)
	return jitter
}

func (l *Jitter) provider(ctx context.Context) {
	defer close(l.ch)
	for {
		l.l.Take()
		select {
		case <-ctx.Done():
			return
		case l.ch <- struct{}{}:
		}
	}
}

func (l *Jitter) Take() {
	<-l.ch
}

func (l *Jitter) Chan() <-chan struct{} {
	return l.ch
}
