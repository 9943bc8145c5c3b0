package seed

import (
	"context"
	"testing"

	"animateme/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixture(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "Animate Me", f.General.SiteName)
	assert.Contains(t, f.Pages, "contact")
	assert.NotEmpty(t, f.QuoteTypes)
	assert.NotEmpty(t, f.QuoteStyles)
	assert.Equal(t, 1.5, f.QuoteStyles[1].CostMultiplier)
	assert.Equal(t, "/quote", f.HeroSlides[0].CTALink)
}

func TestParse_RejectsUnknownPage(t *testing.T) {
	_, err := Parse([]byte("pages:\n  landing: {title: x}\n"))
	assert.ErrorContains(t, err, `unknown page "landing"`)
}

func TestParse_RejectsZeroMultiplier(t *testing.T) {
	_, err := Parse([]byte("quote_styles:\n  - {name: Free, value: free, cost_multiplier: 0}\n"))
	assert.Error(t, err)
}

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)

	f, err := Default()
	require.NoError(t, err)
	require.NoError(t, Apply(ctx, pool, f, nil))
	require.NoError(t, Apply(ctx, pool, f, nil))

	var stats, types, pages int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM home_stats`).Scan(&stats))
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM quote_animation_types`).Scan(&types))
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM page_content`).Scan(&pages))
	assert.Equal(t, len(f.HomeStats), stats)
	assert.Equal(t, len(f.QuoteTypes), types)
	assert.Equal(t, len(f.Pages), pages)
}
