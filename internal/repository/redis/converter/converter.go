package converter

import (
	"github.com/soil2spoon/go-backend/internal/usecase"
)

// ProductCardConverter преобразует карточку товара между usecase и моделью Redis.
type ProductCardConverter struct{}

func (ProductCardConverter) ToRedisModel(entity *usecase.ProductCard) *ProductCardRedisModel {
	return &ProductCardRedisModel{
		ID:            entity.ID,
		Slug:          entity.Slug,
		Name:          entity.Name,
		Description:   entity.Description,
		Price:         entity.Price,
		OriginalPrice: entity.OriginalPrice,
		Image:         entity.Image,
		CategoryID:    entity.CategoryID,
		Rating:        entity.Rating,
		ReviewCount:   entity.ReviewCount,
		Featured:      entity.Featured,
		Trending:      entity.Trending,
	}
}

func (ProductCardConverter) ToUseCase(model *ProductCardRedisModel) *usecase.ProductCard {
	return &usecase.ProductCard{
		ID:            model.ID,
		Slug:          model.Slug,
		Name:          model.Name,
		Description:   model.Description,
		Price:         model.Price,
		OriginalPrice: model.OriginalPrice,
		Image:         model.Image,
		CategoryID:    model.CategoryID,
		Rating:        model.Rating,
		ReviewCount:   model.ReviewCount,
		Featured:      model.Featured,
		Trending:      model.Trending,
	}
}
