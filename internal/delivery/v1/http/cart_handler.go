package http

import (
	"net/http"

	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type cartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type setCartRequest struct {
	Items []cartItemRequest `json:"items"`
}

type cartLineResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

func newCartResponse(lines []usecase.CartLine) []cartLineResponse {
	res := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		res = append(res, cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Slug:      line.Slug,
			Price:     line.Price,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
	}

	return res
}

// getCart
//
//	@Summary		Корзина пользователя
//	@Tags			cart
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		cartLineResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	lines, err := h.cartUsecase.GetCart(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(lines))
}

// setCart
//
//	@Summary		Полная замена корзины
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		setCartRequest	true	"Новое содержимое корзины"
//	@Success		200		{array}		cartLineResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/cart [put]
func (h *CartHandler) setCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	var req setCartRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	items := make([]usecase.SetCartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.SetCartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	lines, err := h.cartUsecase.SetCart(r.Context(), &usecase.SetCartReq{
		UserID: principal.UserID,
		Items:  items,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(lines))
}
