package domain

import "errors"

var ErrInvalidCategory = errors.New("invalid category")

// Category is one of the fixed set of event categories.
type Category string

const (
	CategoryTecnologia Category = "Tecnología"
	CategoryAcademico  Category = "Académico"
	CategoryCultural   Category = "Cultural"
	CategoryDeportivo  Category = "Deportivo"
	CategorySocial     Category = "Social"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryTecnologia,
		CategoryAcademico,
		CategoryCultural,
		CategoryDeportivo,
		CategorySocial,
	}
}

// ParseCategory returns the Category matching s exactly, or ErrInvalidCategory.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}
