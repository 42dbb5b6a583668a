package catalog

import (
	"context"
	"strings"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

// GetByID returns a category
func (s *CategoryService) GetByID(ctx context.Context, id string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns a page of categories ordered by name
func (s *CategoryService) List(ctx context.Context, page int, search string) (*shared.Paginated[CategoryResponse], error) {
	filter := shared.PageFilter(page)
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	filter.Search = strings.TrimSpace(search)

	categories, total, err := s.categoryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shared.PageOf(ToCategoryResponses(categories), total, filter), nil
}

// Create creates a category with a unique slug
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, category.Slug, ""); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("category created", zap.String("category_id", category.ID), zap.String("slug", category.Slug))
	response := ToCategoryResponse(category)
	return &response, nil
}

// Update applies a partial update
func (s *CategoryService) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, slug := category.Name, category.Slug
	if req.Name != nil {
		name = *req.Name
	}
	if req.Slug != nil {
		slug = *req.Slug
	}
	if err := category.Update(name, slug); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, category.Slug, category.ID); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category; products lose the link
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}

func (s *CategoryService) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}
	return nil
}
