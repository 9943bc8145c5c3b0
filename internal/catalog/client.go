// Package catalog fetches the product cards shown on the e-store page from
// the studio's external storefront.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"go.uber.org/zap"
)

// ErrUpstream wraps every failure talking to the storefront.
var ErrUpstream = errors.New("catalog upstream unavailable")

const maxBody = 4 << 20

type Client struct {
	endpoint string
	http     *http.Client
	limit    int
	logger   *zap.Logger
}

// New returns a client for endpoint, which serves either a storefront
// products.json document or a plain JSON array of product cards. limit <= 0
// returns every product.
func New(endpoint string, timeout time.Duration, limit int, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		limit:    limit,
		logger:   logging.OrNop(logger),
	}
}

// Products returns normalized product cards, newest first as served.
func (c *Client) Products(ctx context.Context) ([]domain.CatalogProduct, error) {
	if c.endpoint == "" {
		return []domain.CatalogProduct{}, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("catalog fetch failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog returned non-200", zap.String("endpoint", c.endpoint), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	products, err := decode(body, c.storeBase())
	if err != nil {
		c.logger.Warn("catalog payload not understood", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if c.limit > 0 && len(products) > c.limit {
		products = products[:c.limit]
	}
	return products, nil
}

func (c *Client) storeBase() string {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

type storefrontProduct struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Handle   string      `json:"handle"`
	Variants []struct {
		Price string `json:"price"`
	} `json:"variants"`
	Images []struct {
		Src string `json:"src"`
	} `json:"images"`
}

func decode(body []byte, base string) ([]domain.CatalogProduct, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cards []domain.CatalogProduct
		if err := json.Unmarshal(trimmed, &cards); err != nil {
			return nil, err
		}
		if cards == nil {
			cards = []domain.CatalogProduct{}
		}
		return cards, nil
	}

	var doc struct {
		Products []storefrontProduct `json:"products"`
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	out := make([]domain.CatalogProduct, 0, len(doc.Products))
	for _, p := range doc.Products {
		card := domain.CatalogProduct{ID: p.ID.String(), Title: p.Title}
		if len(p.Variants) > 0 {
			card.Price, _ = strconv.ParseFloat(strings.TrimSpace(p.Variants[0].Price), 64)
		}
		if len(p.Images) > 0 {
			card.ImageURL = p.Images[0].Src
		}
		if p.Handle != "" && base != "" {
			card.ProductURL = base + "/products/" + p.Handle
		}
		out = append(out, card)
	}
	return out, nil
}
