// Package seed loads the starter content a fresh install needs to render.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"animateme/internal/domain"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture is the seed document. Lists are only seeded into empty tables and
// keyed rows are never overwritten, so Apply can run on every deploy.
type Fixture struct {
	General          General                           `yaml:"general"`
	Pages            map[string]map[string]interface{} `yaml:"pages"`
	QuoteTypes       []QuoteType                       `yaml:"quote_types"`
	QuoteStyles      []QuoteStyle                      `yaml:"quote_styles"`
	HomeStats        []HomeStat                        `yaml:"home_stats"`
	HeroSlides       []HeroSlide                       `yaml:"hero_slides"`
	BlogCategories   []string                          `yaml:"blog_categories"`
	EstoreCategories []string                          `yaml:"estore_categories"`
}

type General struct {
	SiteName          string `yaml:"site_name"`
	Logo              string `yaml:"logo"`
	Favicon           string `yaml:"favicon"`
	FooterDescription string `yaml:"footer_description"`
}

type QuoteType struct {
	Name     string  `yaml:"name"`
	Value    string  `yaml:"value"`
	BaseCost float64 `yaml:"base_cost"`
}

type QuoteStyle struct {
	Name           string  `yaml:"name"`
	Value          string  `yaml:"value"`
	CostMultiplier float64 `yaml:"cost_multiplier"`
}

type HomeStat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type HeroSlide struct {
	Tagline1        string `yaml:"tagline1"`
	Tagline2        string `yaml:"tagline2"`
	Subtitle        string `yaml:"subtitle"`
	CTAText         string `yaml:"cta_text"`
	CTALink         string `yaml:"cta_link"`
	BackgroundImage string `yaml:"background_image"`
}

// Default returns the embedded fixture.
func Default() (Fixture, error) {
	return Parse(defaultFixture)
}

// Parse decodes a fixture and rejects unknown page keys.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	for page := range f.Pages {
		if !domain.IsPageKey(page) {
			return Fixture{}, fmt.Errorf("parse fixture: unknown page %q", page)
		}
	}
	for _, s := range f.QuoteStyles {
		if s.CostMultiplier <= 0 {
			return Fixture{}, fmt.Errorf("parse fixture: style %q needs a positive multiplier", s.Value)
		}
	}
	return f, nil
}

// Apply writes the fixture in one transaction.
func Apply(ctx context.Context, pool *pgxpool.Pool, f Fixture, logger *zap.Logger) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		steps := []struct {
			name string
			run  func(context.Context, repository.Querier, Fixture) (int64, error)
		}{
			{"general_settings", seedGeneral},
			{"page_content", seedPages},
			{"quote_animation_types", seedQuoteTypes},
			{"quote_animation_styles", seedQuoteStyles},
			{"home_stats", seedHomeStats},
			{"home_hero_slides", seedHeroSlides},
			{"blog_categories", seedNamed("blog_categories", func(f Fixture) []string { return f.BlogCategories })},
			{"estore_categories", seedNamed("estore_categories", func(f Fixture) []string { return f.EstoreCategories })},
		}
		for _, step := range steps {
			n, err := step.run(ctx, tx, f)
			if err != nil {
				return fmt.Errorf("seed %s: %w", step.name, err)
			}
			if logger != nil {
				logger.Info("seeded", zap.String("table", step.name), zap.Int64("rows", n))
			}
		}
		return nil
	})
}

func isEmpty(ctx context.Context, q repository.Querier, table string) (bool, error) {
	rows, err := q.Query(ctx, "SELECT NOT EXISTS (SELECT 1 FROM "+table+")")
	if err != nil {
		return false, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowTo[bool])
}

func seedGeneral(ctx context.Context, q repository.Querier, f Fixture) (int64, error) {
	if f.General.SiteName == "" {
		return 0, nil
	}
	empty, err := isEmpty(ctx, q, "general_settings")
	if err != nil || !empty {
		return 0, err
	}
	g := f.General
	tag, err := q.Exec(ctx, `INSERT INTO general_settings (site_name, logo, favicon, footer_description) VALUES ($1, $2, $3, $4)`,
		g.SiteName, g.Logo, g.Favicon, g.FooterDescription)
	return tag.RowsAffected(), err
}

func seedPages(ctx context.Context, q repository.Querier, f Fixture) (int64, error) {
	var total int64
	for page, content := range f.Pages {
		raw, err := json.Marshal(content)
		if err != nil {
			return total, fmt.Errorf("page %s: %w", page, err)
		}
		tag, err := q.Exec(ctx, `INSERT INTO page_content (page, content) VALUES ($1, $2::jsonb) ON CONFLICT (page) DO NOTHING`, page, string(raw))
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

func seedQuoteTypes(ctx context.Context, q repository.Querier, f Fixture) (int64, error) {
	var total int64
	for _, t := range f.QuoteTypes {
		tag, err := q.Exec(ctx, `INSERT INTO quote_animation_types (name, value, base_cost) VALUES ($1, $2, $3) ON CONFLICT (value) DO NOTHING`,
			t.Name, t.Value, t.BaseCost)
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

func seedQuoteStyles(ctx context.Context, q repository.Querier, f Fixture) (int64, error) {
	var total int64
	for _, s := range f.QuoteStyles {
		tag, err := q.Exec(ctx, `INSERT INTO quote_animation_styles (name, value, cost_multiplier) VALUES ($1, $2, $3) ON CONFLICT (value) DO NOTHING`,
			s.Name, s.Value, s.CostMultiplier)
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

func seedHomeStats(ctx context.Context, q repository.Querier, f Fixture) (int64, error) {
	empty, err := isEmpty(ctx, q, "home_stats")
	if err != nil || !empty {
		return 0, err
	}
	var total int64
	for i, s := range f.HomeStats {
		tag, err := q.Exec(ctx, `INSERT INTO home_stats (label, value, sort_order) VALUES ($1, $2, $3)`, s.Label, s.Value, i)
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

func seedHeroSlides(ctx context.Context, q repository.Querier, f Fixture) (int64, error) {
	empty, err := isEmpty(ctx, q, "home_hero_slides")
	if err != nil || !empty {
		return 0, err
	}
	var total int64
	for i, s := range f.HeroSlides {
		tag, err := q.Exec(ctx, `
INSERT INTO home_hero_slides (tagline1, tagline2, subtitle, cta_text, cta_link, background_image, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.Tagline1, s.Tagline2, s.Subtitle, s.CTAText, s.CTALink, s.BackgroundImage, i)
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

func seedNamed(table string, names func(Fixture) []string) func(context.Context, repository.Querier, Fixture) (int64, error) {
	return func(ctx context.Context, q repository.Querier, f Fixture) (int64, error) {
		var total int64
		for _, name := range names(f) {
			tag, err := q.Exec(ctx, "INSERT INTO "+table+" (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
			if err != nil {
				return total, err
			}
			total += tag.RowsAffected()
		}
		return total, nil
	}
}
