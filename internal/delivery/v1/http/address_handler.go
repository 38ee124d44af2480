package http

import (
	"net/http"

	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

type AddressHandler struct {
	addressUsecase usecase.AddressUC
	logger         logger.Logger
}

func NewAddressHandler(addressUsecase usecase.AddressUC, logger logger.Logger) *AddressHandler {
	return &AddressHandler{addressUsecase: addressUsecase, logger: logger}
}

type saveAddressRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	IsDefault    bool   `json:"isDefault"`
}

type addressResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	IsDefault    bool   `json:"isDefault"`
}

func newAddressResponse(res *usecase.AddressRes) addressResponse {
	return addressResponse{
		ID:           res.ID,
		Name:         res.Name,
		Phone:        res.Phone,
		AddressLine1: res.AddressLine1,
		AddressLine2: res.AddressLine2,
		City:         res.City,
		State:        res.State,
		Pincode:      res.Pincode,
		IsDefault:    res.IsDefault,
	}
}

func (h *AddressHandler) saveAddressReq(r *http.Request, userID, addressID int64) (*usecase.SaveAddressReq, error) {
	var req saveAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	return &usecase.SaveAddressReq{
		UserID:       userID,
		AddressID:    addressID,
		Name:         req.Name,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		IsDefault:    req.IsDefault,
	}, nil
}

// listAddresses
//
//	@Summary		Адресная книга пользователя
//	@Tags			addresses
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		addressResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/addresses [get]
func (h *AddressHandler) listAddresses(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	addresses, err := h.addressUsecase.ListAddresses(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res := make([]addressResponse, 0, len(addresses))
	for i := range addresses {
		res = append(res, newAddressResponse(&addresses[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// createAddress
//
//	@Summary		Добавление адреса доставки
//	@Tags			addresses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		saveAddressRequest	true	"Адрес"
//	@Success		201		{object}	addressResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/addresses [post]
func (h *AddressHandler) createAddress(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	req, err := h.saveAddressReq(r, principal.UserID, 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.addressUsecase.CreateAddress(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newAddressResponse(res))
}

// updateAddress
//
//	@Summary		Изменение адреса доставки
//	@Tags			addresses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			addressId	path		int					true	"ID адреса"
//	@Param			request		body		saveAddressRequest	true	"Адрес"
//	@Success		200			{object}	addressResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/addresses/{addressId} [put]
func (h *AddressHandler) updateAddress(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	addressID, err := pathInt64(r, "addressId")
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := h.saveAddressReq(r, principal.UserID, addressID)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.addressUsecase.UpdateAddress(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newAddressResponse(res))
}

// deleteAddress
//
//	@Summary		Удаление адреса доставки
//	@Tags			addresses
//	@Produce		json
//	@Security		BearerAuth
//	@Param			addressId	path	int	true	"ID адреса"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Router			/addresses/{addressId} [delete]
func (h *AddressHandler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	addressID, err := pathInt64(r, "addressId")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.addressUsecase.DeleteAddress(r.Context(), addressID, principal.UserID); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
