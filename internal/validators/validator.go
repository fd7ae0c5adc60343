package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CategoryRegistry answers whether a category may be used on a post
type CategoryRegistry interface {
	IsValid(category string) bool
	All() []string
}

// StaticCategoryRegistry is a fixed list of categories
type StaticCategoryRegistry struct {
	categories []string
	index      map[string]struct{}
}

// NewStaticCategoryRegistry keeps the given order and drops blanks and duplicates
func NewStaticCategoryRegistry(categories []string) *StaticCategoryRegistry {
	r := &StaticCategoryRegistry{index: make(map[string]struct{}, len(categories))}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := r.index[c]; ok {
			continue
		}
		r.index[c] = struct{}{}
		r.categories = append(r.categories, c)
	}
	return r
}

// IsValid reports whether category is registered
func (r *StaticCategoryRegistry) IsValid(category string) bool {
	_, ok := r.index[category]
	return ok
}

// All returns a copy of the registered categories
func (r *StaticCategoryRegistry) All() []string {
	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// CustomValidator wraps go-playground/validator with the rules of this service
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds a validator reporting JSON field names and knowing the
// "category" rule
func NewValidator(categories CategoryRegistry) *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return categories.IsValid(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate checks a struct against its validate tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Var checks a single value against a tag expression
func (cv *CustomValidator) Var(field interface{}, tag string) error {
	return cv.validator.Var(field, tag)
}
