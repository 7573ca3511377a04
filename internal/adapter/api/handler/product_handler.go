package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/middleware"
	"farmstand/internal/domain/entity"
	"farmstand/internal/usecase"
	"farmstand/pkg/errors"
	"farmstand/pkg/response"
)

type ProductHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewProductHandler(catalogUseCase *usecase.CatalogUseCase) *ProductHandler {
	return &ProductHandler{catalogUseCase: catalogUseCase}
}

func pathQueryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid id value", err)
	}
	return id, nil
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	if categoryID := c.QueryParam("category_id"); categoryID != "" {
		id, err := pathQueryID(categoryID)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid category_id parameter", err))
		}
		products, err := h.catalogUseCase.ListProductsByCategory(ctx, id)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, products)
	}

	if vendorID := c.QueryParam("vendor_id"); vendorID != "" {
		id, err := pathQueryID(vendorID)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid vendor_id parameter", err))
		}
		products, err := h.catalogUseCase.ListProductsByVendor(ctx, id)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, products)
	}

	products, err := h.catalogUseCase.ListProducts(ctx)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	products, err := h.catalogUseCase.SearchProducts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url,omitempty"`
	CategoryID  int64   `json:"category_id,omitempty"`
	IsOrganic   bool    `json:"is_organic"`
	IsLocal     bool    `json:"is_local"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.CreateProduct(c.Request().Context(), middleware.UserID(c), &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		IsOrganic:   req.IsOrganic,
		IsLocal:     req.IsLocal,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, product)
}

type productUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	IsOrganic   *bool    `json:"is_organic,omitempty"`
	IsLocal     *bool    `json:"is_local,omitempty"`
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	product, err := h.catalogUseCase.UpdateProduct(c.Request().Context(), middleware.UserID(c), id, entity.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		IsOrganic:   req.IsOrganic,
		IsLocal:     req.IsLocal,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.catalogUseCase.DeleteProduct(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Product deleted"})
}
