package domain

import "time"

// Product описывает товар каталога.
// Rating и ReviewCount — производные поля, пересчитываемые из отзывов;
// источником истины является таблица отзывов.
type Product struct {
	ID            int64
	Name          string
	Slug          string
	Price         int64 // Цена хранится в минимальных единицах валюты (пайсах)
	OriginalPrice *int64
	CategoryID    string
	Rating        float64 // Среднее по отзывам, 1 знак после запятой
	ReviewCount   int
	Image         string
	Description   string
	Featured      bool
	Trending      bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewProduct(name, slug string, price int64, categoryID string) *Product {
	return &Product{
		Name:       name,
		Slug:       slug,
		Price:      price,
		CategoryID: categoryID,
	}
}
