package main

import (
	"context"
	"errors"

	"animateme/internal/config"
	"animateme/internal/domain"
	"animateme/internal/httpserver"
	"animateme/internal/repository/blog"
	"animateme/internal/repository/casestudy"
	estorerepo "animateme/internal/repository/estore"
	"animateme/internal/repository/home"
	"animateme/internal/repository/offering"
	"animateme/internal/repository/portfolio"
	quoterepo "animateme/internal/repository/quote"
	"animateme/internal/repository/sitesettings"
	"animateme/internal/repository/testimonial"
	"animateme/internal/service/manager"
	"animateme/internal/settings"
	"animateme/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type repos struct {
	general             sitesettings.GeneralRepository
	payment             sitesettings.PaymentRepository
	pages               sitesettings.PageRepository
	services            offering.ServiceRepository
	samples             offering.SampleRepository
	portfolioCategories portfolio.CategoryRepository
	portfolioItems      portfolio.ItemRepository
	portfolioAssets     portfolio.AssetRepository
	testimonials        testimonial.Repository
	caseStudies         casestudy.Repository
	blogCategories      blog.CategoryRepository
	blogPosts           blog.PostRepository
	quoteTypes          quoterepo.TypeRepository
	quoteStyles         quoterepo.StyleRepository
	heroSlides          home.SlideRepository
	homeStats           home.StatRepository
	estoreCategories    estorerepo.CategoryRepository
}

func newRepos(pool *pgxpool.Pool, logger *zap.Logger) repos {
	return repos{
		general:             sitesettings.NewGeneralPostgres(pool, logger),
		payment:             sitesettings.NewPaymentPostgres(pool, logger),
		pages:               sitesettings.NewPagePostgres(pool, logger),
		services:            offering.NewServicePostgres(pool, logger),
		samples:             offering.NewSamplePostgres(pool, logger),
		portfolioCategories: portfolio.NewCategoryPostgres(pool, logger),
		portfolioItems:      portfolio.NewItemPostgres(pool, logger),
		portfolioAssets:     portfolio.NewAssetPostgres(pool, logger),
		testimonials:        testimonial.NewPostgres(pool, logger),
		caseStudies:         casestudy.NewPostgres(pool, logger),
		blogCategories:      blog.NewCategoryPostgres(pool, logger),
		blogPosts:           blog.NewPostPostgres(pool, logger),
		quoteTypes:          quoterepo.NewTypePostgres(pool, logger),
		quoteStyles:         quoterepo.NewStylePostgres(pool, logger),
		heroSlides:          home.NewSlidePostgres(pool, logger),
		homeStats:           home.NewStatPostgres(pool, logger),
		estoreCategories:    estorerepo.NewCategoryPostgres(pool, logger),
	}
}

func newSettingsStore(r repos, cfg config.Config, logger *zap.Logger) *settings.Store {
	return settings.New(settings.Sources{
		General:              r.general,
		Pages:                r.pages,
		Services:             r.services,
		PortfolioItems:       r.portfolioItems,
		PortfolioCategories:  r.portfolioCategories,
		PortfolioAssets:      r.portfolioAssets,
		Testimonials:         r.testimonials,
		CaseStudies:          r.caseStudies,
		BlogPosts:            r.blogPosts,
		BlogCategories:       r.blogCategories,
		QuoteAnimationTypes:  r.quoteTypes,
		QuoteAnimationStyles: r.quoteStyles,
		HomeHeroSlides:       r.heroSlides,
		HomeStats:            r.homeStats,
	}, settings.WithTimeout(cfg.RefreshTimeout), settings.WithLogger(logger))
}

func adminResources(r repos, products estorerepo.ProductRepository, deps manager.Deps) []httpserver.AdminResource {
	return []httpserver.AdminResource{
		httpserver.Resource(manager.New[domain.GeneralSettings]("general-settings", r.general, deps),
			httpserver.ResourceOptions[domain.GeneralSettings]{
				List: single(r.general.Get),
				Files: []httpserver.FileField[domain.GeneralSettings]{
					image("logo", storage.BucketImages, func(g *domain.GeneralSettings) *string { return &g.Logo }),
					image("favicon", storage.BucketImages, func(g *domain.GeneralSettings) *string { return &g.Favicon }),
				},
			}),
		httpserver.Resource(manager.New[domain.PaymentSettings]("payment-settings", r.payment, deps),
			httpserver.ResourceOptions[domain.PaymentSettings]{
				List: single(r.payment.Get),
				Files: []httpserver.FileField[domain.PaymentSettings]{
					image("qr_code", storage.BucketQRCodes, func(p *domain.PaymentSettings) *string { return &p.QRCodeURL }),
				},
			}),
		httpserver.Resource(manager.New[domain.PageContent]("pages", r.pages, deps, func(p *domain.PageContent) {
			manager.SanitizeBlock(p.Content)
		}), httpserver.ResourceOptions[domain.PageContent]{
			List:     r.pages.List,
			Key:      func(p *domain.PageContent, page string) { p.Page = page },
			ValidKey: domain.IsPageKey,
		}),
		httpserver.Resource(manager.New[domain.Service]("services", r.services, deps,
			manager.RichText(func(s *domain.Service) *string { return &s.DetailsContent })),
			httpserver.ResourceOptions[domain.Service]{
				List:  r.services.List,
				Files: []httpserver.FileField[domain.Service]{image("image", storage.BucketImages, func(s *domain.Service) *string { return &s.Image })},
			}),
		httpserver.Resource(manager.New[domain.ServiceSample]("service-samples", r.samples, deps,
			manager.RichText(func(s *domain.ServiceSample) *string { return &s.DetailsContent })),
			httpserver.ResourceOptions[domain.ServiceSample]{List: r.samples.List}),
		httpserver.Resource(manager.New[domain.PortfolioCategory]("portfolio-categories", r.portfolioCategories, deps),
			httpserver.ResourceOptions[domain.PortfolioCategory]{List: r.portfolioCategories.List}),
		httpserver.Resource(manager.New[domain.PortfolioItem]("portfolio-items", r.portfolioItems, deps),
			httpserver.ResourceOptions[domain.PortfolioItem]{
				List:  r.portfolioItems.List,
				Files: []httpserver.FileField[domain.PortfolioItem]{image("image", storage.BucketImages, func(p *domain.PortfolioItem) *string { return &p.Image })},
			}),
		httpserver.Resource(manager.New[domain.PortfolioAsset]("portfolio-assets", r.portfolioAssets, deps),
			httpserver.ResourceOptions[domain.PortfolioAsset]{
				List:  r.portfolioAssets.List,
				Files: []httpserver.FileField[domain.PortfolioAsset]{image("image", storage.BucketImages, func(p *domain.PortfolioAsset) *string { return &p.ImageURL })},
			}),
		httpserver.Resource(manager.New[domain.Testimonial]("testimonials", r.testimonials, deps),
			httpserver.ResourceOptions[domain.Testimonial]{
				List:  r.testimonials.List,
				Files: []httpserver.FileField[domain.Testimonial]{image("avatar", storage.BucketImages, func(t *domain.Testimonial) *string { return &t.Avatar })},
			}),
		httpserver.Resource(manager.New[domain.CaseStudy]("case-studies", r.caseStudies, deps,
			manager.RichText(
				func(c *domain.CaseStudy) *string { return &c.Challenge },
				func(c *domain.CaseStudy) *string { return &c.Solution },
				func(c *domain.CaseStudy) *string { return &c.Result },
			)),
			httpserver.ResourceOptions[domain.CaseStudy]{
				List:  r.caseStudies.List,
				Files: []httpserver.FileField[domain.CaseStudy]{image("image", storage.BucketImages, func(c *domain.CaseStudy) *string { return &c.Image })},
			}),
		httpserver.Resource(manager.New[domain.BlogCategory]("blog-categories", r.blogCategories, deps),
			httpserver.ResourceOptions[domain.BlogCategory]{List: r.blogCategories.List}),
		httpserver.Resource(manager.New[domain.BlogPost]("blog-posts", r.blogPosts, deps,
			manager.RichText(func(p *domain.BlogPost) *string { return &p.Content })),
			httpserver.ResourceOptions[domain.BlogPost]{
				List:  r.blogPosts.List,
				Files: []httpserver.FileField[domain.BlogPost]{image("image", storage.BucketImages, func(p *domain.BlogPost) *string { return &p.Image })},
			}),
		httpserver.Resource(manager.New[domain.QuoteAnimationType]("quote-animation-types", r.quoteTypes, deps),
			httpserver.ResourceOptions[domain.QuoteAnimationType]{List: r.quoteTypes.List}),
		httpserver.Resource(manager.New[domain.QuoteAnimationStyle]("quote-animation-styles", r.quoteStyles, deps),
			httpserver.ResourceOptions[domain.QuoteAnimationStyle]{List: r.quoteStyles.List}),
		httpserver.Resource(manager.New[domain.HeroSlide]("hero-slides", r.heroSlides, deps),
			httpserver.ResourceOptions[domain.HeroSlide]{
				List:  r.heroSlides.List,
				Files: []httpserver.FileField[domain.HeroSlide]{image("background_image", storage.BucketImages, func(s *domain.HeroSlide) *string { return &s.BackgroundImage })},
			}),
		httpserver.Resource(manager.New[domain.HomeStat]("home-stats", r.homeStats, deps),
			httpserver.ResourceOptions[domain.HomeStat]{List: r.homeStats.List}),
		httpserver.Resource(manager.New[domain.EstoreCategory]("estore-categories", r.estoreCategories, deps),
			httpserver.ResourceOptions[domain.EstoreCategory]{List: r.estoreCategories.List}),
		httpserver.Resource(manager.New[domain.EstoreProduct]("estore-products", products, deps,
			manager.RichText(func(p *domain.EstoreProduct) *string { return &p.Description })),
			httpserver.ResourceOptions[domain.EstoreProduct]{
				List: products.List,
				Files: []httpserver.FileField[domain.EstoreProduct]{
					image("featured_image", storage.BucketProductImages, func(p *domain.EstoreProduct) *string { return &p.FeaturedImageURL }),
					{
						Form:     "other_images",
						Bucket:   storage.BucketProductImages,
						Multiple: true,
						Apply:    func(p *domain.EstoreProduct, url string) { p.OtherImageURLs = append(p.OtherImageURLs, url) },
					},
				},
			}),
	}
}

// image maps one uploaded file onto a URL field.
func image[T any](form, bucket string, field func(*T) *string) httpserver.FileField[T] {
	return httpserver.FileField[T]{
		Form:   form,
		Bucket: bucket,
		Apply:  func(rec *T, url string) { *field(rec) = url },
	}
}

// single lists a one-row table; a missing row lists as empty.
func single[T any](get func(context.Context) (*T, error)) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		v, err := get(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return []T{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []T{*v}, nil
	}
}
