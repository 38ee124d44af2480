package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

type productListResponse struct {
	Products []usecase.ProductCard `json:"products"`
	Total    int64                 `json:"total"`
}

type categoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	DisplayOrder int    `json:"displayOrder"`
}

type saveProductRequest struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	OriginalPrice string `json:"originalPrice"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	Featured      bool   `json:"featured"`
	Trending      bool   `json:"trending"`
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Tags			products
//	@Produce		json
//	@Param			category	query		string	false	"Категория"
//	@Param			limit		query		int		false	"Размер страницы"
//	@Param			offset		query		int		false	"Смещение"
//	@Success		200			{object}	productListResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	res, err := p.catalogUsecase.ListProducts(r.Context(), &usecase.ListProductsReq{
		CategoryID: r.URL.Query().Get("category"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, productListResponse{
		Products: res.Products,
		Total:    res.Total,
	})
}

// listFeatured
//
//	@Summary		Товары главной страницы
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}	usecase.ProductCard
//	@Router			/products/featured [get]
func (p *ProductHandler) listFeatured(w http.ResponseWriter, r *http.Request) {
	cards, err := p.catalogUsecase.ListFeatured(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, cards)
}

// listTrending
//
//	@Summary		Популярные товары
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}	usecase.ProductCard
//	@Router			/products/trending [get]
func (p *ProductHandler) listTrending(w http.ResponseWriter, r *http.Request) {
	cards, err := p.catalogUsecase.ListTrending(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, cards)
}

// getProduct
//
//	@Summary		Карточка товара по slug
//	@Tags			products
//	@Produce		json
//	@Param			product	path		string	true	"Slug товара"
//	@Success		200		{object}	usecase.ProductCard
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{product} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "product")

	card, err := p.catalogUsecase.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			WriteSuccess(w, http.StatusNotFound, NewErrorResponse(http.StatusNotFound, e.ErrProductNotFound.Error()))
			return
		}

		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, card)
}

// listCategories
//
//	@Summary		Категории каталога
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}	categoryResponse
//	@Router			/categories [get]
func (p *ProductHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, categoryResponse{
			ID:           c.ID,
			Name:         c.Name,
			Image:        c.Image,
			DisplayOrder: c.DisplayOrder,
		})
	}

	WriteSuccess(w, http.StatusOK, res)
}

// saveProduct
//
//	@Summary		Создание или обновление товара
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		saveProductRequest	true	"Товар"
//	@Success		200		{object}	usecase.ProductCard
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Router			/admin/products [post]
func (p *ProductHandler) saveProduct(w http.ResponseWriter, r *http.Request) {
	var req saveProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	price, err := parsePriceToPaise(req.Price)
	if err != nil {
		WriteError(w, err)
		return
	}

	var originalPrice *int64
	if req.OriginalPrice != "" {
		op, err := parsePriceToPaise(req.OriginalPrice)
		if err != nil {
			WriteError(w, err)
			return
		}
		originalPrice = &op
	}

	card, err := p.catalogUsecase.SaveProduct(r.Context(), &usecase.SaveProductReq{
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		Price:         price,
		OriginalPrice: originalPrice,
		Image:         req.Image,
		CategoryID:    req.Category,
		Featured:      req.Featured,
		Trending:      req.Trending,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, card)
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			productId	path	int	true	"ID товара"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Router			/admin/products/{productId} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "productId")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.catalogUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
