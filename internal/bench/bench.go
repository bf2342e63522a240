// Package bench drives a randomized workload against a randset.Set. The
// set itself is single-threaded, so the workers share one instance behind a
// mutex, which is the intended discipline for concurrent callers. Besides
// measuring throughput, the workload checks that every sampled element is a
// member of the set.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/alex65536/randset"
	"github.com/alex65536/randset/internal/util/slogx"
)

// Progress reports to the watcher are throttled to this rate.
const watchRate = 30.0

type Options struct {
	// Number of concurrent workers. Zero means default.
	Workers int
	// Total number of operations across all workers. Zero means default.
	Ops int64
	// Size of the value space. Zero means default.
	Keys int
	// Relative weights of add, del and rand operations. All zero means
	// default.
	AddWeight  int
	DelWeight  int
	RandWeight int
	// Seed for the workload generator. Zero means a time-based seed.
	Seed uint64
}

func (o *Options) Validate() error {
	if o.Workers < 0 {
		return fmt.Errorf("negative workers")
	}
	if o.Ops < 0 {
		return fmt.Errorf("negative ops")
	}
	if o.Keys < 0 {
		return fmt.Errorf("negative keys")
	}
	if o.AddWeight < 0 || o.DelWeight < 0 || o.RandWeight < 0 {
		return fmt.Errorf("negative op weight")
	}
	return nil
}

func (o *Options) FillDefaults() {
	if o.Workers == 0 {
		o.Workers = 4
	}
	if o.Ops == 0 {
		o.Ops = 1_000_000
	}
	if o.Keys == 0 {
		o.Keys = 10_000
	}
	if o.AddWeight == 0 && o.DelWeight == 0 && o.RandWeight == 0 {
		o.AddWeight, o.DelWeight, o.RandWeight = 3, 1, 2
	}
}

type Status struct {
	Done    int64
	Added   int64
	Deleted int64
	Sampled int64
	Size    int
}

type Watcher func(s Status)

type Config struct {
	Log     *slog.Logger
	Watcher Watcher
}

type Result struct {
	Status
	Elapsed time.Duration
}

func Run(ctx context.Context, o Options, c Config) (Result, error) {
	if err := o.Validate(); err != nil {
		return Result{}, fmt.Errorf("bad options: %w", err)
	}
	o.FillDefaults()
	log := c.Log
	if log == nil {
		log = slogx.DiscardLogger()
	}

	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	vals := make([]string, o.Keys)
	for i := range vals {
		vals[i] = fmt.Sprintf("%s-%d", petname.Generate(2, "-"), i)
	}

	set := randset.NewWithCapacity[string](o.Keys)
	var mu sync.Mutex
	var done, added, deleted, sampled atomic.Int64

	snapshot := func() Status {
		mu.Lock()
		size := set.Len()
		mu.Unlock()
		return Status{
			Done:    done.Load(),
			Added:   added.Load(),
			Deleted: deleted.Load(),
			Sampled: sampled.Load(),
			Size:    size,
		}
	}

	limit := rate.NewLimiter(rate.Limit(watchRate), 1)
	watch := func() {
		if c.Watcher == nil || !limit.Allow() {
			return
		}
		c.Watcher(snapshot())
	}

	log.Info("starting workload",
		slog.Int("workers", o.Workers),
		slog.Int64("ops", o.Ops),
		slog.Int("keys", o.Keys),
		slog.Uint64("seed", seed),
	)

	start := time.Now()
	weightSum := o.AddWeight + o.DelWeight + o.RandWeight
	perWorker := o.Ops / int64(o.Workers)
	eg, gctx := errgroup.WithContext(ctx)
	for w := range o.Workers {
		rnd := rand.New(rand.NewPCG(seed, uint64(w)))
		eg.Go(func() error {
			for i := int64(0); i < perWorker; i++ {
				if i%1024 == 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
				}
				v := vals[rnd.IntN(len(vals))]
				switch p := rnd.IntN(weightSum); {
				case p < o.AddWeight:
					mu.Lock()
					ok := set.Add(v)
					mu.Unlock()
					if ok {
						added.Add(1)
					}
				case p < o.AddWeight+o.DelWeight:
					mu.Lock()
					ok := set.Del(v)
					mu.Unlock()
					if ok {
						deleted.Add(1)
					}
				default:
					mu.Lock()
					got, ok := set.Rand()
					member := !ok || set.Has(got)
					mu.Unlock()
					if ok {
						sampled.Add(1)
					}
					if !member {
						return fmt.Errorf("sampled element %q is not a member", got)
					}
				}
				done.Add(1)
				watch()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Error("workload failed", slogx.Err(err))
		return Result{}, err
	}

	res := Result{Status: snapshot(), Elapsed: time.Since(start)}
	log.Info("workload finished",
		slog.Int64("done", res.Done),
		slog.Int("size", res.Size),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
