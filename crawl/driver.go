// Package crawl implements the bounded breadth-first crawl: the
// two-generation frontier, the per-host exclusion cache, the admission gate
// and the driver that runs the BFS loop.
package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/bfscrawl"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State is the lifecycle state of a crawl run.
type State int

const (
	Idle State = iota
	Running
	Completed
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Stats summarizes a crawl run.
type Stats struct {
	Visited       int
	Extracted     int
	Levels        int
	FetchFailures int
	Rejected      map[bfscrawl.Reason]int
	RobotsHosts   int
	Seen          int
	Duration      time.Duration
	State         State

	// SeedRejected is set when the seed failed admission.
	SeedRejected bfscrawl.Reason
}

// Driver runs a bounded BFS crawl from a seed URL.
//
// Both bounds are inclusive: a page is fetched while the visited count is
// at most MaxVisit, and a link is offered to admission while the extracted
// count is at most MaxExtract. A run therefore visits up to MaxVisit+1
// pages.
type Driver struct {
	MaxVisit   int
	MaxExtract int

	// Concurrency is the number of pages of one level fetched in parallel.
	// Values below 2 fetch sequentially.
	Concurrency int

	Fetcher       bfscrawl.Fetcher
	Canonicalizer bfscrawl.Canonicalizer
	Probe         bfscrawl.HTMLProbe
	RobotsSource  bfscrawl.RobotsSource
	RobotsParser  bfscrawl.RobotsParser
	Domains       []string
	Sink          bfscrawl.Sink
	Observer      bfscrawl.Observer
	Logger        *zap.Logger

	// BloomFPRate is the false positive rate of the seen pre-filter.
	BloomFPRate float64
}

// maxBloomSize caps the pre-filter sizing for very large bounds.
const maxBloomSize = 1 << 22

// run holds the state owned by a single crawl.
type run struct {
	*Driver
	frontier *Frontier
	gate     *AdmissionGate
	parents  map[string]string
	stats    *Stats
}

// fetched pairs a visited URL with the outcome of fetching it.
type fetched struct {
	url   string
	level int
	page  *bfscrawl.Page
	err   error
}

// Run crawls from seed until the visit bound is exceeded or the frontier
// is exhausted. Every run starts from empty state.
//
// An unusable seed completes the run with nothing visited. Fetch failures
// are counted and skipped. A sink error or context cancellation aborts the
// run and is returned alongside the stats gathered so far.
func (d *Driver) Run(ctx context.Context, seed string) (*Stats, error) {
	start := time.Now()
	r := d.newRun()
	r.stats.State = Running

	err := r.crawl(ctx, seed)

	r.stats.Extracted = r.gate.Extracted()
	r.stats.RobotsHosts = r.gate.Exclusions.Hosts()
	r.stats.Seen = r.frontier.SeenLen()
	r.stats.Duration = time.Since(start)
	if err != nil {
		r.stats.State = Aborted
		r.logger().Error("crawl aborted", zap.Error(err), zap.Int("visited", r.stats.Visited))
		return r.stats, err
	}
	r.stats.State = Completed
	r.logger().Info("crawl completed",
		zap.Int("visited", r.stats.Visited),
		zap.Int("extracted", r.stats.Extracted),
		zap.Int("levels", r.stats.Levels),
		zap.Int("fetch_failures", r.stats.FetchFailures),
		zap.Int("seen", r.stats.Seen),
		zap.Uint("seen_estimate", r.frontier.SeenEstimate()),
		zap.Duration("duration", r.stats.Duration),
	)
	return r.stats, nil
}

func (d *Driver) newRun() *run {
	fpRate := d.BloomFPRate
	if fpRate <= 0 {
		fpRate = 0.01
	}
	expected := maxBloomSize
	if d.MaxVisit < maxBloomSize && d.MaxExtract < maxBloomSize {
		expected = min(max(d.MaxExtract+d.MaxVisit+2, 1), maxBloomSize)
	}

	frontier := NewFrontier(uint(expected), fpRate)
	return &run{
		Driver:   d,
		frontier: frontier,
		gate: &AdmissionGate{
			Domains:       NewAllowedDomains(d.Domains),
			Exclusions:    NewExclusionCache(d.RobotsSource, d.RobotsParser, d.Logger),
			Canonicalizer: d.Canonicalizer,
			Probe:         d.Probe,
			Frontier:      frontier,
			Logger:        d.Logger,
		},
		parents: make(map[string]string),
		stats: &Stats{
			Rejected: make(map[bfscrawl.Reason]int),
		},
	}
}

func (r *run) crawl(ctx context.Context, seed string) error {
	out := r.gate.Seed(ctx, seed)
	if !out.Admitted() {
		r.rejected(out.Reason)
		r.stats.SeedRejected = out.Reason
		r.logger().Warn("seed URL unusable", zap.String("seed", seed), zap.String("reason", string(out.Reason)))
		return nil
	}
	r.levelStarted()

	for r.stats.Visited <= r.MaxVisit && r.frontier.HasWork() {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch := r.pop()
		if len(batch) == 0 {
			if !r.frontier.SwapGenerations() {
				break
			}
			r.levelStarted()
			continue
		}

		level := r.frontier.Level()
		for _, u := range batch {
			r.frontier.MarkVisited(u)
			r.stats.Visited++
			if err := r.Sink.Visited(ctx, bfscrawl.Record{URL: u, Level: level, Parent: r.parents[u]}); err != nil {
				return err
			}
			r.observer().PageVisited(u, level)
		}

		for _, f := range r.fetch(ctx, batch, level) {
			if err := r.extract(ctx, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// pop removes up to Concurrency URLs from the current generation, never
// more than the visit budget left.
func (r *run) pop() []string {
	n := max(r.Concurrency, 1)
	if left := r.MaxVisit - r.stats.Visited; left < n-1 {
		n = left + 1
	}

	batch := make([]string, 0, n)
	for len(batch) < n {
		u, ok := r.frontier.NextPending()
		if !ok {
			break
		}
		batch = append(batch, u)
	}
	return batch
}

// fetch retrieves every URL of the batch, in parallel when Concurrency
// allows, and returns the results in batch order.
func (r *run) fetch(ctx context.Context, batch []string, level int) []fetched {
	results := make([]fetched, len(batch))

	var g errgroup.Group
	g.SetLimit(max(r.Concurrency, 1))
	for i, u := range batch {
		g.Go(func() error {
			page, err := r.Fetcher.Fetch(ctx, u)
			results[i] = fetched{url: u, level: level, page: page, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// extract offers the links of one fetched page to admission in document
// order, checking the extract bound before each attempt.
func (r *run) extract(ctx context.Context, f fetched) error {
	if f.err != nil {
		r.stats.FetchFailures++
		r.observer().FetchFailed(f.url, f.err)
		r.logger().Warn("fetch failed", zap.String("url", f.url), zap.Error(f.err))
		return nil
	}
	if f.page == nil {
		return nil
	}

	for _, link := range f.page.Links {
		if r.gate.Extracted() > r.MaxExtract {
			break
		}
		out := r.gate.Admit(ctx, link)
		if !out.Admitted() {
			r.rejected(out.Reason)
			continue
		}
		r.parents[out.URL] = f.url
		if err := r.Sink.Discovered(ctx, bfscrawl.Record{URL: out.URL, Level: f.level + 1, Parent: f.url}); err != nil {
			return err
		}
		r.observer().LinkAdmitted(out.URL, f.level+1)
	}
	return nil
}

func (r *run) levelStarted() {
	level := r.frontier.Level()
	r.stats.Levels++
	r.observer().LevelStarted(level)
	r.logger().Info("level started", zap.Int("level", level), zap.Int("urls", r.frontier.CurrentLen()))
}

func (r *run) rejected(reason bfscrawl.Reason) {
	r.stats.Rejected[reason]++
	r.observer().LinkRejected(reason)
}

func (r *run) observer() bfscrawl.Observer {
	if r.Observer == nil {
		return nopObserver{}
	}
	return r.Observer
}

func (r *run) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

type nopObserver struct{}

func (nopObserver) LevelStarted(int)             {}
func (nopObserver) PageVisited(string, int)      {}
func (nopObserver) FetchFailed(string, error)    {}
func (nopObserver) LinkAdmitted(string, int)     {}
func (nopObserver) LinkRejected(bfscrawl.Reason) {}
