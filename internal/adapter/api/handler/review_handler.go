package handler

import (
	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/middleware"
	"farmstand/internal/domain/entity"
	"farmstand/internal/usecase"
	"farmstand/pkg/errors"
	"farmstand/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment,omitempty"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), middleware.UserID(c), usecase.CreateReviewInput{
		ProductID: productID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}

func (h *ReviewHandler) ListProductReviews(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	reviews, err := h.reviewUseCase.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}

func (h *ReviewHandler) ListMyReviews(c echo.Context) error {
	reviews, err := h.reviewUseCase.ListByUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Title   *string `json:"title,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	reviewID := c.Param("reviewId")
	if reviewID == "" {
		return response.Error(c, errors.BadRequest("Review ID is required", nil))
	}

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.UpdateReview(c.Request().Context(), middleware.UserID(c), reviewID, entity.ReviewUpdate{
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	reviewID := c.Param("reviewId")
	if reviewID == "" {
		return response.Error(c, errors.BadRequest("Review ID is required", nil))
	}

	if err := h.reviewUseCase.DeleteReview(c.Request().Context(), middleware.UserID(c), reviewID); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Review deleted"})
}
