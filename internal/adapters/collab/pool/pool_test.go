package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/introscore/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPool_Do(t *testing.T) {
	Convey("Given a started pool", t, func() {
		ctx := context.Background()
		p := New(WithName("test"), WithWorkers(2), WithQueueSize(4))
		p.Start(ctx)
		defer func() { _ = p.Shutdown(ctx) }()

		Convey("When a job succeeds", func() {
			var ran atomic.Bool
			err := p.Do(ctx, func(context.Context) error {
				ran.Store(true)
				return nil
			})

			Convey("Then Do returns after it ran", func() {
				So(err, ShouldBeNil)
				So(ran.Load(), ShouldBeTrue)
			})
		})

		Convey("When a job fails", func() {
			boom := errors.New("boom")
			err := p.Do(ctx, func(context.Context) error { return boom })

			Convey("Then the job error is returned", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})

		Convey("When many callers share the pool", func() {
			var inFlight, peak atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 6; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = p.Do(ctx, func(context.Context) error {
						n := inFlight.Add(1)
						for {
							old := peak.Load()
							if n <= old || peak.CompareAndSwap(old, n) {
								break
							}
						}
						time.Sleep(10 * time.Millisecond)
						inFlight.Add(-1)
						return nil
					})
				}()
			}
			wg.Wait()

			Convey("Then no more than the worker count run at once", func() {
				So(peak.Load(), ShouldBeLessThanOrEqualTo, 2)
				So(peak.Load(), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestPool_Backpressure(t *testing.T) {
	Convey("Given a pool with one worker and a queue of one", t, func() {
		ctx := context.Background()
		p := New(WithWorkers(1), WithQueueSize(1))
		p.Start(ctx)

		release := make(chan struct{})
		started := make(chan struct{})
		blocking := func(context.Context) error {
			<-release
			return nil
		}

		go func() {
			_ = p.Do(ctx, func(c context.Context) error {
				close(started)
				return blocking(c)
			})
		}()
		<-started

		queued := make(chan error, 1)
		go func() { queued <- p.Do(ctx, blocking) }()
		So(waitFor(func() bool { return p.Len() == 1 }), ShouldBeTrue)

		Convey("When another call arrives", func() {
			err := p.Do(ctx, blocking)

			Convey("Then it fails fast with ErrPoolBusy", func() {
				So(errors.Is(err, ErrPoolBusy), ShouldBeTrue)
				close(release)
				So(<-queued, ShouldBeNil)
				So(p.Shutdown(ctx), ShouldBeNil)
			})
		})
	})
}

func TestPool_ContextAndShutdown(t *testing.T) {
	Convey("Given a pool that was never started", t, func() {
		p := New(WithWorkers(1), WithQueueSize(2))

		Convey("When the caller context ends while queued", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			err := p.Do(ctx, func(context.Context) error { return nil })

			Convey("Then Do returns the context error", func() {
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})
		})

		Convey("When the pool is shut down", func() {
			So(p.Shutdown(context.Background()), ShouldBeNil)

			Convey("Then further calls are refused", func() {
				err := p.Do(context.Background(), func(context.Context) error { return nil })
				So(errors.Is(err, ErrStopped), ShouldBeTrue)
				So(p.Shutdown(context.Background()), ShouldBeNil)
			})
		})
	})
}

type countingEmbedder struct{ calls atomic.Int32 }

func (c *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	c.calls.Add(1)
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0}
	}
	return out, nil
}

type failingChecker struct{}

func (failingChecker) Check(context.Context, string) ([]scoring.GrammarIssue, error) {
	return nil, errors.New("languagetool down")
}

func TestGuards(t *testing.T) {
	Convey("Given guarded collaborators", t, func() {
		ctx := context.Background()
		p := New(WithWorkers(1))
		p.Start(ctx)
		defer func() { _ = p.Shutdown(ctx) }()

		Convey("Then nil collaborators stay nil", func() {
			So(GuardEmbedder(p, nil), ShouldBeNil)
			So(GuardGrammarChecker(p, nil), ShouldBeNil)
		})

		Convey("Then embed results pass through the pool", func() {
			inner := &countingEmbedder{}
			vecs, err := GuardEmbedder(p, inner).Embed(ctx, []string{"a", "b"})
			So(err, ShouldBeNil)
			So(vecs, ShouldHaveLength, 2)
			So(inner.calls.Load(), ShouldEqual, 1)
		})

		Convey("Then checker errors pass through the pool", func() {
			issues, err := GuardGrammarChecker(p, failingChecker{}).Check(ctx, "text")
			So(err, ShouldNotBeNil)
			So(issues, ShouldBeNil)
		})
	})
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
