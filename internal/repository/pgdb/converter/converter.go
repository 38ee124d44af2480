package converter

import (
	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
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
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
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
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter struct{}

func (CategoryConverter) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:           model.ID,
		Name:         model.Name,
		Image:        model.Image,
		DisplayOrder: model.DisplayOrder,
		CreatedAt:    model.CreatedAt,
	}
}

// ReviewConverter преобразует сущности Review между domain и моделью PostgreSQL.
type ReviewConverter struct{}

func (ReviewConverter) ToModel(entity *domain.Review) *ReviewModel {
	return &ReviewModel{
		ID:         entity.ID,
		ProductID:  entity.ProductID,
		UserID:     entity.UserID,
		Author:     entity.Author,
		Rating:     entity.Rating,
		Text:       entity.Text,
		ReviewDate: entity.ReviewDate,
		CreatedAt:  entity.CreatedAt,
	}
}

func (ReviewConverter) ToEntity(model *ReviewModel) *domain.Review {
	return &domain.Review{
		ID:         model.ID,
		ProductID:  model.ProductID,
		UserID:     model.UserID,
		Author:     model.Author,
		Rating:     model.Rating,
		Text:       model.Text,
		ReviewDate: model.ReviewDate,
		CreatedAt:  model.CreatedAt,
	}
}

// OrderConverter преобразует сущности Order между domain и моделями PostgreSQL.
type OrderConverter struct{}

func (OrderConverter) ToModel(entity *domain.Order) *OrderModel {
	return &OrderModel{
		ID:            entity.ID,
		UserID:        entity.UserID,
		Status:        string(entity.Status),
		Total:         entity.Total,
		ShippingName:  entity.ShippingName,
		Phone:         entity.Phone,
		AddressLine1:  entity.AddressLine1,
		AddressLine2:  entity.AddressLine2,
		City:          entity.City,
		State:         entity.State,
		Pincode:       entity.Pincode,
		PaymentMethod: entity.PaymentMethod,
		CreatedAt:     entity.CreatedAt,
	}
}

func (OrderConverter) ToEntity(model *OrderModel, items []OrderItemModel) *domain.Order {
	orderItems := make([]domain.OrderItem, 0, len(items))
	for i := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ID:           items[i].ID,
			OrderID:      items[i].OrderID,
			ProductID:    items[i].ProductID,
			ProductName:  items[i].ProductName,
			ProductSlug:  items[i].ProductSlug,
			PriceAtOrder: items[i].PriceAtOrder,
			Quantity:     items[i].Quantity,
		})
	}

	return &domain.Order{
		ID:            model.ID,
		UserID:        model.UserID,
		Status:        domain.OrderStatus(model.Status),
		Total:         model.Total,
		ShippingName:  model.ShippingName,
		Phone:         model.Phone,
		AddressLine1:  model.AddressLine1,
		AddressLine2:  model.AddressLine2,
		City:          model.City,
		State:         model.State,
		Pincode:       model.Pincode,
		PaymentMethod: model.PaymentMethod,
		CreatedAt:     model.CreatedAt,
		Items:         orderItems,
	}
}

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter struct{}

func (UserConverter) ToEntity(model *UserModel) *domain.User {
	return &domain.User{
		ID:               model.ID,
		Email:            model.Email,
		PasswordHash:     model.PasswordHash,
		Name:             model.Name,
		Role:             model.Role,
		ResetToken:       model.ResetToken,
		ResetTokenExpiry: model.ResetTokenExpiry,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// AddressConverter преобразует сущности Address между domain и моделью PostgreSQL.
type AddressConverter struct{}

func (AddressConverter) ToModel(entity *domain.Address) *AddressModel {
	return &AddressModel{
		ID:           entity.ID,
		UserID:       entity.UserID,
		Name:         entity.Name,
		Phone:        entity.Phone,
		AddressLine1: entity.AddressLine1,
		AddressLine2: entity.AddressLine2,
		City:         entity.City,
		State:        entity.State,
		Pincode:      entity.Pincode,
		IsDefault:    entity.IsDefault,
		CreatedAt:    entity.CreatedAt,
	}
}

func (AddressConverter) ToEntity(model *AddressModel) *domain.Address {
	return &domain.Address{
		ID:           model.ID,
		UserID:       model.UserID,
		Name:         model.Name,
		Phone:        model.Phone,
		AddressLine1: model.AddressLine1,
		AddressLine2: model.AddressLine2,
		City:         model.City,
		State:        model.State,
		Pincode:      model.Pincode,
		IsDefault:    model.IsDefault,
		CreatedAt:    model.CreatedAt,
	}
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		OrderID:     entity.OrderID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	events := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		events = append(events, c.ToEntity(model))
	}

	return events
}
