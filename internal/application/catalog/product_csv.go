package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	csvimport "github.com/pimify/backend/internal/infrastructure/import"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductCSVColumns is the header of product exports and imports
var ProductCSVColumns = []string{"id", "name", "sku", "description", "price", "currency", "is_active", "categories"}

// categorySeparator joins category slugs inside the categories column
const categorySeparator = "|"

// ProductCSVService exports products to CSV and upserts them back by SKU
type ProductCSVService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductCSVService creates a new ProductCSVService
func NewProductCSVService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductCSVService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductCSVService{productRepo: productRepo, categoryRepo: categoryRepo, logger: logger}
}

// Export writes every product, ordered by SKU
func (s *ProductCSVService) Export(ctx context.Context, w io.Writer) (int, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	slugs, err := s.slugsByID(ctx, products)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ProductCSVColumns); err != nil {
		return 0, err
	}
	for _, p := range products {
		categories := make([]string, 0, len(p.CategoryIDs))
		for _, id := range p.CategoryIDs {
			if slug, ok := slugs[id]; ok {
				categories = append(categories, slug)
			}
		}
		record := []string{
			p.ID,
			p.Name,
			p.SKU,
			p.Description,
			p.Price.Amount().StringFixed(2),
			p.Price.Currency().String(),
			strconv.FormatBool(p.IsActive),
			strings.Join(categories, categorySeparator),
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(products), nil
}

// Import upserts products by SKU. Row failures are collected in the
// report; only unreadable input and storage errors abort the run.
// stock_quantity is never imported.
func (s *ProductCSVService) Import(ctx context.Context, r io.Reader) (*csvimport.Report, error) {
	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, shared.NewValidationError("file", err.Error())
	}
	if missing := parser.MissingHeaders("name", "sku", "price"); len(missing) > 0 {
		return nil, shared.NewValidationError("file", "Missing columns: "+strings.Join(missing, ", "))
	}

	report := csvimport.NewReport()
	for {
		row, err := parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var rowErr *csvimport.RowError
		if errors.As(err, &rowErr) {
			report.Fail(rowErr)
			continue
		}
		if err != nil {
			return nil, err
		}

		created, err := s.importRow(ctx, row)
		if err != nil {
			if errors.As(err, &rowErr) {
				report.Fail(rowErr)
				continue
			}
			return nil, err
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	s.logger.Info("product import finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("errors", len(report.Errors)))
	return report, nil
}

func (s *ProductCSVService) importRow(ctx context.Context, row *csvimport.Row) (bool, error) {
	sku := row.Get("sku")
	if sku == "" {
		return false, csvimport.NewRowError(row.Line, "sku", "SKU is required")
	}

	amount, err := decimal.NewFromString(row.Get("price"))
	if err != nil {
		return false, csvimport.NewRowError(row.Line, "price", fmt.Sprintf("invalid price %q", row.Get("price")))
	}
	price, err := buildPrice(amount, row.Get("currency"))
	if err != nil {
		return false, rowValidationError(row.Line, err)
	}

	isActive := false
	if v := row.Get("is_active"); v != "" {
		isActive, err = strconv.ParseBool(v)
		if err != nil {
			return false, csvimport.NewRowError(row.Line, "is_active", fmt.Sprintf("invalid boolean %q", v))
		}
	}

	categoryIDs, err := s.resolveSlugs(ctx, row)
	if err != nil {
		return false, err
	}

	product, err := s.productRepo.FindBySKU(ctx, sku)
	created := errors.Is(err, shared.ErrNotFound)
	switch {
	case created:
		product, err = catalog.NewProduct(row.Get("name"), sku, price)
		if err != nil {
			return false, rowValidationError(row.Line, err)
		}
		product.Description = row.Get("description")
	case err != nil:
		return false, err
	default:
		if err := product.Update(row.Get("name"), sku, row.Get("description")); err != nil {
			return false, rowValidationError(row.Line, err)
		}
		if err := product.SetPrice(price); err != nil {
			return false, rowValidationError(row.Line, err)
		}
	}
	if isActive {
		product.Activate()
	} else {
		product.Deactivate()
	}
	product.SetCategories(categoryIDs)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return false, err
	}
	if err := s.productRepo.ReplaceCategories(ctx, product.ID, product.CategoryIDs); err != nil {
		return false, err
	}
	return created, nil
}

func (s *ProductCSVService) resolveSlugs(ctx context.Context, row *csvimport.Row) ([]string, error) {
	raw := row.Get("categories")
	if raw == "" {
		return []string{}, nil
	}
	var slugs []string
	for _, slug := range strings.Split(raw, categorySeparator) {
		if slug = strings.TrimSpace(slug); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	found, err := s.categoryRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]string, len(found))
	for _, c := range found {
		bySlug[c.Slug] = c.ID
	}
	ids := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		id, ok := bySlug[slug]
		if !ok {
			return nil, csvimport.NewRowError(row.Line, "categories", fmt.Sprintf("unknown category %q", slug))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *ProductCSVService) slugsByID(ctx context.Context, products []catalog.Product) (map[string]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, p := range products {
		for _, id := range p.CategoryIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Slug
	}
	return out, nil
}

// rowValidationError turns the first failing field into a row error
func rowValidationError(line int, err error) error {
	var verr *shared.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return csvimport.NewRowError(line, "", err.Error())
	}
	sort.Strings(fields)
	return csvimport.NewRowError(line, fields[0], verr.Fields[fields[0]])
}
