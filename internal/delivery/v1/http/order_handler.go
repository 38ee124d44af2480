package http

import (
	"net/http"
	"time"

	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

type checkoutRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	PaymentMethod string `json:"paymentMethod"`
}

type orderItemResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	ID            int64               `json:"id"`
	Status        string              `json:"status"`
	Total         int64               `json:"total"`
	ShippingName  string              `json:"shippingName"`
	Phone         string              `json:"phone"`
	AddressLine1  string              `json:"addressLine1"`
	AddressLine2  string              `json:"addressLine2,omitempty"`
	City          string              `json:"city"`
	State         string              `json:"state"`
	Pincode       string              `json:"pincode"`
	PaymentMethod string              `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	Items         []orderItemResponse `json:"items"`
}

func newOrderResponse(res *usecase.OrderRes) orderResponse {
	items := make([]orderItemResponse, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return orderResponse{
		ID:            res.ID,
		Status:        string(res.Status),
		Total:         res.Total,
		ShippingName:  res.ShippingName,
		Phone:         res.Phone,
		AddressLine1:  res.AddressLine1,
		AddressLine2:  res.AddressLine2,
		City:          res.City,
		State:         res.State,
		Pincode:       res.Pincode,
		PaymentMethod: res.PaymentMethod,
		CreatedAt:     res.CreatedAt,
		Items:         items,
	}
}

// checkout
//
//	@Summary		Оформление заказа из корзины
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		checkoutRequest	true	"Адрес доставки"
//	@Success		201		{object}	orderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/orders [post]
func (h *OrderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.orderUsecase.Checkout(r.Context(), &usecase.CheckoutReq{
		UserID:        principal.UserID,
		ShippingName:  req.Name,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newOrderResponse(res))
}

// listOrders
//
//	@Summary		История заказов пользователя
//	@Tags			orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		orderResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/orders [get]
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	orders, err := h.orderUsecase.ListOrders(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res := make([]orderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, newOrderResponse(&orders[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}
