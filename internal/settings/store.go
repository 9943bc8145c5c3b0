// Package settings aggregates every public-site resource into one snapshot.
//
// A refresh reads all resources in parallel. A resource that fails keeps its
// empty default and is logged; the rest of the snapshot is still published.
// Snapshots are swapped atomically so readers never see a partial one.
package settings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type GeneralSource interface {
	Get(ctx context.Context) (*domain.GeneralSettings, error)
}

type PageSource interface {
	Get(ctx context.Context, page string) (*domain.PageContent, error)
}

type ListSource[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Sources are the readers behind each resource. A nil source leaves its
// resource at the empty default.
type Sources struct {
	General              GeneralSource
	Pages                PageSource
	Services             ListSource[domain.Service]
	PortfolioItems       ListSource[domain.PortfolioItem]
	PortfolioCategories  ListSource[domain.PortfolioCategory]
	PortfolioAssets      ListSource[domain.PortfolioAsset]
	Testimonials         ListSource[domain.Testimonial]
	CaseStudies          ListSource[domain.CaseStudy]
	BlogPosts            ListSource[domain.BlogPost]
	BlogCategories       ListSource[domain.BlogCategory]
	QuoteAnimationTypes  ListSource[domain.QuoteAnimationType]
	QuoteAnimationStyles ListSource[domain.QuoteAnimationStyle]
	HomeHeroSlides       ListSource[domain.HeroSlide]
	HomeStats            ListSource[domain.HomeStat]
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout bounds each resource read. A read that runs past it fails on
// its own and does not discard the others.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// WithLogger sets the logger used for per-resource failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = logging.OrNop(l) }
}

// Store owns the current snapshot.
type Store struct {
	resources []resource
	logger    *zap.Logger
	timeout   time.Duration

	mu          sync.Mutex
	snap        atomic.Pointer[Snapshot]
	initialized atomic.Bool
	loading     atomic.Int32
	generation  atomic.Uint64
}

// New returns a store serving Empty() until the first Refresh.
func New(src Sources, opts ...Option) *Store {
	s := &Store{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.resources = resourcesFor(src)
	s.snap.Store(Empty())
	return s
}

// Snapshot returns the current snapshot. It is never nil.
func (s *Store) Snapshot() *Snapshot { return s.snap.Load() }

// Initialized reports whether an aggregation has completed.
func (s *Store) Initialized() bool { return s.initialized.Load() }

// Loading reports whether a refresh is in flight.
func (s *Store) Loading() bool { return s.loading.Load() > 0 }

// Generation counts completed refreshes.
func (s *Store) Generation() uint64 { return s.generation.Load() }

// Refresh re-reads every resource and publishes a new snapshot. Concurrent
// calls are serialized. If ctx ends before all reads settle the results are
// dropped, the previous snapshot stays, and ctx's error is returned.
func (s *Store) Refresh(ctx context.Context) error {
	s.loading.Add(1)
	defer s.loading.Add(-1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	started := time.Now()
	applies := make([]func(*Snapshot), len(s.resources))
	var (
		g      errgroup.Group
		failed atomic.Int32
	)
	for i, res := range s.resources {
		i, res := i, res
		g.Go(func() error {
			apply, err := s.read(ctx, res)
			if err != nil {
				failed.Add(1)
				level := zap.WarnLevel
				if errors.Is(err, domain.ErrNotFound) {
					level = zap.DebugLevel
				}
				s.logger.Log(level, "settings resource unavailable", zap.String("resource", res.name), zap.Error(err))
				return nil
			}
			applies[i] = apply
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.Warn("settings refresh abandoned", zap.Error(err))
		return err
	}

	next := Empty()
	for _, apply := range applies {
		if apply != nil {
			apply(next)
		}
	}
	s.snap.Store(next)
	s.initialized.Store(true)
	gen := s.generation.Add(1)
	s.logger.Debug("settings refreshed",
		zap.Uint64("generation", gen),
		zap.Int32("failed", failed.Load()),
		zap.Duration("took", time.Since(started)))
	return nil
}

func (s *Store) read(ctx context.Context, res resource) (func(*Snapshot), error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return res.load(ctx)
}

type resource struct {
	name string
	load func(ctx context.Context) (func(*Snapshot), error)
}

var errNoSource = errors.New("no source configured")

func list[T any](name string, src ListSource[T], set func(*Snapshot, []T)) resource {
	return resource{name: name, load: func(ctx context.Context) (func(*Snapshot), error) {
		if src == nil {
			return nil, errNoSource
		}
		items, err := src.List(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return func(s *Snapshot) { set(s, items) }, nil
	}}
}

func resourcesFor(src Sources) []resource {
	out := []resource{{name: "global", load: func(ctx context.Context) (func(*Snapshot), error) {
		if src.General == nil {
			return nil, errNoSource
		}
		g, err := src.General.Get(ctx)
		if err != nil {
			return nil, err
		}
		return func(s *Snapshot) { s.Global = *g }, nil
	}}}

	for _, p := range pageSlots {
		p := p
		out = append(out, resource{name: "content." + p.page, load: func(ctx context.Context) (func(*Snapshot), error) {
			if src.Pages == nil {
				return nil, errNoSource
			}
			pc, err := src.Pages.Get(ctx, p.page)
			if err != nil {
				return nil, err
			}
			block := pc.Content
			if block == nil {
				block = Block{}
			}
			return func(s *Snapshot) { *p.slot(&s.Content) = block }, nil
		}})
	}

	return append(out,
		list("services", src.Services, func(s *Snapshot, v []domain.Service) { s.Services = v }),
		list("portfolioItems", src.PortfolioItems, func(s *Snapshot, v []domain.PortfolioItem) { s.PortfolioItems = v }),
		list("portfolioCategories", src.PortfolioCategories, func(s *Snapshot, v []domain.PortfolioCategory) { s.PortfolioCategories = v }),
		list("portfolioAssets", src.PortfolioAssets, func(s *Snapshot, v []domain.PortfolioAsset) { s.PortfolioAssets = v }),
		list("testimonials", src.Testimonials, func(s *Snapshot, v []domain.Testimonial) { s.Testimonials = v }),
		list("caseStudies", src.CaseStudies, func(s *Snapshot, v []domain.CaseStudy) { s.CaseStudies = v }),
		list("blogPosts", src.BlogPosts, func(s *Snapshot, v []domain.BlogPost) { s.BlogPosts = v }),
		list("blogCategories", src.BlogCategories, func(s *Snapshot, v []domain.BlogCategory) { s.BlogCategories = v }),
		list("quoteAnimationTypes", src.QuoteAnimationTypes, func(s *Snapshot, v []domain.QuoteAnimationType) { s.QuoteAnimationTypes = v }),
		list("quoteAnimationStyles", src.QuoteAnimationStyles, func(s *Snapshot, v []domain.QuoteAnimationStyle) { s.QuoteAnimationStyles = v }),
		list("homeHeroSlides", src.HomeHeroSlides, func(s *Snapshot, v []domain.HeroSlide) { s.HomeHeroSlides = v }),
		list("homeStats", src.HomeStats, func(s *Snapshot, v []domain.HomeStat) { s.HomeStats = v }),
	)
}
