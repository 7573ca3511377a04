package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/errors"
)

// CatalogUseCase covers categories and products, the public browse surface.
type CatalogUseCase struct {
	store storage.Storage
}

func NewCatalogUseCase(store storage.Storage) *CatalogUseCase {
	return &CatalogUseCase{store: store}
}

// Categories

func (uc *CatalogUseCase) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := uc.store.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr("Category", err)
	}
	return category, nil
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := uc.store.ListCategories(ctx)
	if err != nil {
		return nil, storeErr("Categories", err)
	}
	return categories, nil
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return nil, errors.BadRequest("Category name is required", nil)
	}
	created, err := uc.store.CreateCategory(ctx, category)
	if err != nil {
		return nil, storeErr("Category", err)
	}
	return created, nil
}

func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id int64, update entity.CategoryUpdate) (*entity.Category, error) {
	updated, err := uc.store.UpdateCategory(ctx, id, update)
	if err != nil {
		return nil, storeErr("Category", err)
	}
	return updated, nil
}

func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	deleted, err := uc.store.DeleteCategory(ctx, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrConflict) {
			return errors.Conflict("Category still has products", err)
		}
		return storeErr("Category", err)
	}
	if !deleted {
		return errors.NotFound("Category", nil)
	}
	return nil
}

// Products

func (uc *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr("Product", err)
	}
	return product, nil
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := uc.store.ListProducts(ctx)
	if err != nil {
		return nil, storeErr("Products", err)
	}
	return products, nil
}

func (uc *CatalogUseCase) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	products, err := uc.store.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, storeErr("Products", err)
	}
	return products, nil
}

func (uc *CatalogUseCase) ListProductsByVendor(ctx context.Context, vendorID int64) ([]*entity.Product, error) {
	products, err := uc.store.ListProductsByVendor(ctx, vendorID)
	if err != nil {
		return nil, storeErr("Products", err)
	}
	return products, nil
}

func (uc *CatalogUseCase) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return uc.ListProducts(ctx)
	}
	products, err := uc.store.SearchProducts(ctx, query)
	if err != nil {
		return nil, storeErr("Products", err)
	}
	return products, nil
}

// CreateProduct registers a product under the caller's vendor profile. The
// vendor id always comes from the authenticated user, never the payload.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, userID int64, product *entity.Product) (*entity.Product, error) {
	vendor, err := uc.store.GetVendorByUser(ctx, userID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil, errors.Forbidden("Only vendors can create products", err)
		}
		return nil, storeErr("Vendor", err)
	}

	if strings.TrimSpace(product.Name) == "" {
		return nil, errors.BadRequest("Product name is required", nil)
	}
	if product.Price < 0 {
		return nil, errors.BadRequest("Product price cannot be negative", nil)
	}
	if product.Stock < 0 {
		return nil, errors.BadRequest("Product stock cannot be negative", nil)
	}

	product.VendorID = vendor.ID
	created, err := uc.store.CreateProduct(ctx, product)
	if err != nil {
		return nil, storeErr("Product", err)
	}
	return created, nil
}

func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, userID, productID int64, update entity.ProductUpdate) (*entity.Product, error) {
	if err := uc.authorizeProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, errors.BadRequest("Product price cannot be negative", nil)
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, errors.BadRequest("Product stock cannot be negative", nil)
	}
	// Ownership is not transferable through this endpoint.
	update.VendorID = nil

	updated, err := uc.store.UpdateProduct(ctx, productID, update)
	if err != nil {
		return nil, storeErr("Product", err)
	}
	return updated, nil
}

func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, userID, productID int64) error {
	if err := uc.authorizeProduct(ctx, userID, productID); err != nil {
		return err
	}
	deleted, err := uc.store.DeleteProduct(ctx, productID)
	if err != nil {
		return storeErr("Product", err)
	}
	if !deleted {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (uc *CatalogUseCase) authorizeProduct(ctx context.Context, userID, productID int64) error {
	product, err := uc.store.GetProduct(ctx, productID)
	if err != nil {
		return storeErr("Product", err)
	}
	vendor, err := uc.store.GetVendorByUser(ctx, userID)
	if err != nil {
		return errors.Forbidden("Only vendors can manage products", err)
	}
	if product.VendorID != vendor.ID {
		return errors.Forbidden("Product belongs to another vendor", nil)
	}
	return nil
}
