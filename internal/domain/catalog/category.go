package catalog

import (
	"regexp"
	"strings"

	"github.com/pimify/backend/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Category groups products
type Category struct {
	shared.BaseEntity
	Name string
	Slug string
}

// NewCategory creates a category
func NewCategory(name, slug string) (*Category, error) {
	if err := validateCategory(name, slug); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Slug:       strings.TrimSpace(slug),
	}, nil
}

// Update changes name and slug
func (c *Category) Update(name, slug string) error {
	if err := validateCategory(name, slug); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Slug = strings.TrimSpace(slug)
	c.Touch()
	return nil
}

func validateCategory(name, slug string) error {
	verr := &shared.ValidationError{}
	name = strings.TrimSpace(name)
	if name == "" {
		verr.Add("name", "Name is required")
	} else if len(name) > 100 {
		verr.Add("name", "Name cannot exceed 100 characters")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		verr.Add("slug", "Slug is required")
	} else if len(slug) > 50 || !slugPattern.MatchString(slug) {
		verr.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens")
	}
	return verr.OrNil()
}
