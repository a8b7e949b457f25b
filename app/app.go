package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dcode-github/luxury_realty/backend/auth"
	"github.com/dcode-github/luxury_realty/backend/cache"
	"github.com/dcode-github/luxury_realty/backend/models"
	"github.com/dcode-github/luxury_realty/backend/repository"
	"github.com/dcode-github/luxury_realty/backend/seed"
	"github.com/dcode-github/luxury_realty/backend/store"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

// Store key prefixes, one per resource type.
const (
	ResourceProperty    = "property"
	ResourceTestimonial = "testimonial"
	ResourceRecognition = "recognition"
	ResourcePartnership = "partnership"
	ResourceBlogPost    = "blog_post"
)

// App holds the store-backed services shared by every handler.
type App struct {
	Store store.Store
	Cache cache.Cache
	Auth  *auth.Service

	Properties   *repository.Repository[models.Property, *models.Property]
	Testimonials *repository.Repository[models.Testimonial, *models.Testimonial]
	Recognitions *repository.Repository[models.Recognition, *models.Recognition]
	Partnerships *repository.Repository[models.Partnership, *models.Partnership]
	Posts        *repository.Repository[models.BlogPost, *models.BlogPost]
}

func New(s store.Store, c cache.Cache, authSvc *auth.Service, opts ...repository.Option) *App {
	utils.Logger.Info("Initializing app")

	if c == nil {
		c = cache.Nop{}
	}
	return &App{
		Store:        s,
		Cache:        c,
		Auth:         authSvc,
		Properties:   repository.New[models.Property](s, ResourceProperty, opts...),
		Testimonials: repository.New[models.Testimonial](s, ResourceTestimonial, opts...),
		Recognitions: repository.New[models.Recognition](s, ResourceRecognition, opts...),
		Partnerships: repository.New[models.Partnership](s, ResourcePartnership, opts...),
		Posts:        repository.New[models.BlogPost](s, ResourceBlogPost, opts...),
	}
}

// SeedAll runs every resource's one-time seed and reports how many records each
// inserted, keyed by store prefix.
func (a *App) SeedAll(ctx context.Context) (map[string]int, error) {
	var (
		mu     sync.Mutex
		counts = map[string]int{}
	)
	record := func(resource string, n int) {
		mu.Lock()
		counts[resource] = n
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return seedOne(gctx, a.Properties, seed.Properties, record)
	})
	g.Go(func() error {
		return seedOne(gctx, a.Testimonials, seed.Testimonials, record)
	})
	g.Go(func() error {
		return seedOne(gctx, a.Recognitions, seed.Recognitions, record)
	})
	g.Go(func() error {
		return seedOne(gctx, a.Partnerships, seed.Partnerships, record)
	})
	g.Go(func() error {
		return seedOne(gctx, a.Posts, seed.BlogPosts, record)
	})

	err := g.Wait()
	for resource, n := range counts {
		if n > 0 {
			a.Cache.Invalidate(ctx, resource)
		}
	}
	return counts, err
}

func seedOne[T any, PT repository.Entity[T]](
	ctx context.Context,
	repo *repository.Repository[T, PT],
	samples func() ([]T, error),
	record func(string, int),
) error {
	recs, err := samples()
	if err != nil {
		return err
	}
	n, err := repo.SeedInitial(ctx, recs)
	record(repo.Resource(), n)
	if err != nil {
		return fmt.Errorf("seed %s: %w", repo.Resource(), err)
	}
	return nil
}

func (a *App) Close(ctx context.Context) {
	if err := a.Store.Close(ctx); err != nil {
		utils.Logger.WithError(err).Error("Error closing store")
	}
	utils.Logger.Info("App shut down.")
}
