package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/errors"
)

type VendorUseCase struct {
	store storage.Storage
}

func NewVendorUseCase(store storage.Storage) *VendorUseCase {
	return &VendorUseCase{store: store}
}

func (uc *VendorUseCase) GetVendor(ctx context.Context, id int64) (*entity.Vendor, error) {
	vendor, err := uc.store.GetVendor(ctx, id)
	if err != nil {
		return nil, storeErr("Vendor", err)
	}
	return vendor, nil
}

func (uc *VendorUseCase) GetVendorByUser(ctx context.Context, userID int64) (*entity.Vendor, error) {
	vendor, err := uc.store.GetVendorByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("Vendor", err)
	}
	return vendor, nil
}

func (uc *VendorUseCase) ListVendors(ctx context.Context) ([]*entity.Vendor, error) {
	vendors, err := uc.store.ListVendors(ctx)
	if err != nil {
		return nil, storeErr("Vendors", err)
	}
	return vendors, nil
}

type VendorRegisterInput struct {
	BusinessName string
	Description  string
	Location     string
	Tags         []string
	LogoURL      string
	BannerURL    string
}

// RegisterVendor creates a vendor profile for the user and flips the vendor
// flag on the account. One profile per user; a second registration conflicts.
func (uc *VendorUseCase) RegisterVendor(ctx context.Context, userID int64, input VendorRegisterInput) (*entity.Vendor, error) {
	if strings.TrimSpace(input.BusinessName) == "" {
		return nil, errors.BadRequest("Business name is required", nil)
	}

	vendor := &entity.Vendor{
		UserID:       userID,
		BusinessName: input.BusinessName,
		Description:  input.Description,
		Location:     input.Location,
		Tags:         input.Tags,
		LogoURL:      input.LogoURL,
		BannerURL:    input.BannerURL,
	}

	created, err := uc.store.CreateVendor(ctx, vendor)
	if err != nil {
		if stderrors.Is(err, storage.ErrConflict) {
			return nil, errors.Conflict("User already has a vendor profile", err)
		}
		return nil, storeErr("Vendor", err)
	}

	isVendor := true
	if _, err := uc.store.UpdateUser(ctx, userID, entity.UserUpdate{IsVendor: &isVendor}); err != nil {
		return nil, storeErr("User", err)
	}
	return created, nil
}

func (uc *VendorUseCase) UpdateVendor(ctx context.Context, userID, vendorID int64, update entity.VendorUpdate) (*entity.Vendor, error) {
	vendor, err := uc.store.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, storeErr("Vendor", err)
	}
	if vendor.UserID != userID {
		return nil, errors.Forbidden("Vendor profile belongs to another user", nil)
	}
	// Rating is derived from reviews, not self-reported.
	update.Rating = nil

	updated, err := uc.store.UpdateVendor(ctx, vendorID, update)
	if err != nil {
		return nil, storeErr("Vendor", err)
	}
	return updated, nil
}

func (uc *VendorUseCase) DeleteVendor(ctx context.Context, userID, vendorID int64) error {
	vendor, err := uc.store.GetVendor(ctx, vendorID)
	if err != nil {
		return storeErr("Vendor", err)
	}
	if vendor.UserID != userID {
		return errors.Forbidden("Vendor profile belongs to another user", nil)
	}

	deleted, err := uc.store.DeleteVendor(ctx, vendorID)
	if err != nil {
		if stderrors.Is(err, storage.ErrConflict) {
			return errors.Conflict("Vendor still has products", err)
		}
		return storeErr("Vendor", err)
	}
	if !deleted {
		return errors.NotFound("Vendor", nil)
	}

	isVendor := false
	if _, err := uc.store.UpdateUser(ctx, userID, entity.UserUpdate{IsVendor: &isVendor}); err != nil {
		return storeErr("User", err)
	}
	return nil
}
