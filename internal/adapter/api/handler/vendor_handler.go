package handler

import (
	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/middleware"
	"farmstand/internal/domain/entity"
	"farmstand/internal/usecase"
	"farmstand/pkg/errors"
	"farmstand/pkg/response"
)

type VendorHandler struct {
	vendorUseCase *usecase.VendorUseCase
}

func NewVendorHandler(vendorUseCase *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{vendorUseCase: vendorUseCase}
}

func (h *VendorHandler) ListVendors(c echo.Context) error {
	vendors, err := h.vendorUseCase.ListVendors(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, vendors)
}

func (h *VendorHandler) GetVendor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	vendor, err := h.vendorUseCase.GetVendor(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, vendor)
}

func (h *VendorHandler) GetMyVendor(c echo.Context) error {
	vendor, err := h.vendorUseCase.GetVendorByUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, vendor)
}

type vendorRegisterRequest struct {
	BusinessName string   `json:"business_name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Location     string   `json:"location,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	LogoURL      string   `json:"logo_url,omitempty"`
	BannerURL    string   `json:"banner_url,omitempty"`
}

func (h *VendorHandler) RegisterVendor(c echo.Context) error {
	var req vendorRegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	vendor, err := h.vendorUseCase.RegisterVendor(c.Request().Context(), middleware.UserID(c), usecase.VendorRegisterInput{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Location:     req.Location,
		Tags:         req.Tags,
		LogoURL:      req.LogoURL,
		BannerURL:    req.BannerURL,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, vendor)
}

type vendorUpdateRequest struct {
	BusinessName *string   `json:"business_name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	LogoURL      *string   `json:"logo_url,omitempty"`
	BannerURL    *string   `json:"banner_url,omitempty"`
}

func (h *VendorHandler) UpdateVendor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req vendorUpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	vendor, err := h.vendorUseCase.UpdateVendor(c.Request().Context(), middleware.UserID(c), id, entity.VendorUpdate{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Location:     req.Location,
		Tags:         req.Tags,
		LogoURL:      req.LogoURL,
		BannerURL:    req.BannerURL,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, vendor)
}

func (h *VendorHandler) DeleteVendor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.vendorUseCase.DeleteVendor(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Vendor profile deleted"})
}
