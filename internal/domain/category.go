package domain

import "time"

// Category описывает категорию товаров. ID — человекочитаемый slug.
type Category struct {
	ID           string
	Name         string
	Image        string
	DisplayOrder int
	CreatedAt    time.Time
}

func NewCategory(id, name string) *Category {
	return &Category{
		ID:   id,
		Name: name,
	}
}
