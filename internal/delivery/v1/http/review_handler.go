package http

import (
	"net/http"

	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUC
	logger        logger.Logger
}

func NewReviewHandler(reviewUsecase usecase.ReviewUC, logger logger.Logger) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase, logger: logger}
}

type createReviewRequest struct {
	Rating *int   `json:"rating"`
	Text   string `json:"text"`
}

type updateReviewRequest struct {
	Rating *int    `json:"rating"`
	Text   *string `json:"text"`
}

type reviewResponse struct {
	ID      int64  `json:"id"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"`
	Text    string `json:"text"`
	IsOwner bool   `json:"isOwner"`
}

func newReviewResponse(res *usecase.ReviewRes) reviewResponse {
	return reviewResponse{
		ID:      res.ID,
		Author:  res.Author,
		Rating:  res.Rating,
		Date:    res.Date,
		Text:    res.Text,
		IsOwner: res.OwnedByCurrentUser,
	}
}

// listReviews
//
//	@Summary		Отзывы о товаре
//	@Tags			reviews
//	@Produce		json
//	@Param			product	path		int	true	"ID товара"
//	@Success		200		{array}		reviewResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/products/{product}/reviews [get]
func (h *ReviewHandler) listReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "product")
	if err != nil {
		WriteError(w, err)
		return
	}

	var viewerID *int64
	if principal, ok := PrincipalFromCtx(r.Context()); ok {
		viewerID = &principal.UserID
	}

	reviews, err := h.reviewUsecase.ListByProduct(r.Context(), productID, viewerID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		res = append(res, newReviewResponse(&reviews[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// createReview
//
//	@Summary		Добавление отзыва
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			product	path		int					true	"ID товара"
//	@Param			request	body		createReviewRequest	true	"Отзыв"
//	@Success		201		{object}	reviewResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/products/{product}/reviews [post]
func (h *ReviewHandler) createReview(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "product")
	if err != nil {
		WriteError(w, err)
		return
	}

	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.reviewUsecase.Create(r.Context(), &usecase.CreateReviewReq{
		ProductID: productID,
		UserID:    principal.UserID,
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newReviewResponse(res))
}

// updateReview
//
//	@Summary		Изменение собственного отзыва
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			product		path		int					true	"ID товара"
//	@Param			reviewId	path		int					true	"ID отзыва"
//	@Param			request		body		updateReviewRequest	true	"Изменения"
//	@Success		200			{object}	reviewResponse
//	@Failure		403			{object}	ErrorResponse
//	@Router			/products/{product}/reviews/{reviewId} [put]
func (h *ReviewHandler) updateReview(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "product")
	if err != nil {
		WriteError(w, err)
		return
	}

	reviewID, err := pathInt64(r, "reviewId")
	if err != nil {
		WriteError(w, err)
		return
	}

	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	var req updateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.reviewUsecase.Update(r.Context(), &usecase.UpdateReviewReq{
		ProductID: productID,
		ReviewID:  reviewID,
		UserID:    principal.UserID,
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newReviewResponse(res))
}

// deleteReview
//
//	@Summary		Удаление собственного отзыва
//	@Tags			reviews
//	@Produce		json
//	@Security		BearerAuth
//	@Param			product		path	int	true	"ID товара"
//	@Param			reviewId	path	int	true	"ID отзыва"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Router			/products/{product}/reviews/{reviewId} [delete]
func (h *ReviewHandler) deleteReview(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "product")
	if err != nil {
		WriteError(w, err)
		return
	}

	reviewID, err := pathInt64(r, "reviewId")
	if err != nil {
		WriteError(w, err)
		return
	}

	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	if err := h.reviewUsecase.Delete(r.Context(), productID, reviewID, principal.UserID); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// adminDeleteReview
//
//	@Summary		Удаление любого отзыва администратором
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			product		path	int	true	"ID товара"
//	@Param			reviewId	path	int	true	"ID отзыва"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Router			/admin/products/{product}/reviews/{reviewId} [delete]
func (h *ReviewHandler) adminDeleteReview(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "product")
	if err != nil {
		WriteError(w, err)
		return
	}

	reviewID, err := pathInt64(r, "reviewId")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.reviewUsecase.DeleteAsAdmin(r.Context(), productID, reviewID); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
