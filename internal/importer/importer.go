// Package importer loads e-store products from a spreadsheet export.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"go.uber.org/zap"
)

type ProductWriter interface {
	UpsertByName(ctx context.Context, p domain.EstoreProduct) (*domain.EstoreProduct, error)
}

type CategoryEnsurer interface {
	Ensure(ctx context.Context, name string) (*domain.EstoreCategory, error)
}

// CSVImporter reads rows with the columns
// name,description,price,category,featured_image_url,other_image_urls.
// A row without a name continues the previous product and only adds images.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryEnsurer
	logger     *zap.Logger

	categoryIDs map[string]string
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryEnsurer, logger *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:      csvr,
		products:    products,
		categories:  categories,
		logger:      logging.OrNop(logger),
		categoryIDs: map[string]string{},
	}
}

type csvRow struct {
	line     int
	Name     string
	Desc     string
	Price    float64
	Category string
	Featured string
	Others   []string
}

// Run upserts every product in the file and returns how many were written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New(`missing "name" column`)
	}

	var (
		current  *csvRow
		imported int
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		row, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if row == nil {
			continue
		}
		row.line = line

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil {
			if row.Featured != "" {
				current.Others = append(current.Others, row.Featured)
			}
			current.Others = append(current.Others, row.Others...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Price < 0 {
		return fmt.Errorf("line %d: negative price for %q", row.line, row.Name)
	}
	p := domain.EstoreProduct{
		Name:             row.Name,
		Description:      row.Desc,
		Price:            row.Price,
		FeaturedImageURL: row.Featured,
		OtherImageURLs:   row.Others,
	}
	if p.OtherImageURLs == nil {
		p.OtherImageURLs = []string{}
	}
	if row.Category != "" {
		id, err := i.categoryID(ctx, row.Category)
		if err != nil {
			return fmt.Errorf("category %q: %w", row.Category, err)
		}
		p.CategoryID = &id
	}

	saved, err := i.products.UpsertByName(ctx, p)
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Name, err)
	}
	i.logger.Debug("product imported", zap.String("id", saved.ID), zap.String("name", saved.Name))
	return nil
}

func (i *CSVImporter) categoryID(ctx context.Context, name string) (string, error) {
	key := strings.ToLower(name)
	if id, ok := i.categoryIDs[key]; ok {
		return id, nil
	}
	c, err := i.categories.Ensure(ctx, name)
	if err != nil {
		return "", err
	}
	i.categoryIDs[key] = c.ID
	return c.ID, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	row := &csvRow{
		Name:     pick(record, index, "name"),
		Desc:     pick(record, index, "description"),
		Category: pick(record, index, "category"),
		Featured: pick(record, index, "featured_image_url"),
		Others:   splitURLs(pick(record, index, "other_image_urls")),
	}
	if row.Name == "" && row.Featured == "" && len(row.Others) == 0 {
		return nil, nil
	}
	if price := pick(record, index, "price"); price != "" {
		v, err := strconv.ParseFloat(strings.ReplaceAll(price, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q", price)
		}
		row.Price = v
	}
	return row, nil
}

// splitURLs accepts ";" or "|" separated lists.
func splitURLs(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
