package oracle

import (
	"context"
	"database/sql"

	"farmstand/internal/domain/entity"
)

// Categories

func (s *Store) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	r, err := s.queryCursorOne(ctx, "BEGIN category_get(:p_id, :p_cur); END;",
		sql.Named("p_id", id))
	if err != nil {
		return nil, err
	}
	return categoryFromRow(r)
}

func (s *Store) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	rows, err := s.queryCursor(ctx, "BEGIN categories_list(:p_cur); END;")
	if err != nil {
		return nil, err
	}
	return mapRows(rows, categoryFromRow)
}

func (s *Store) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	id, err := s.callCreate(ctx,
		"BEGIN category_create(:p_name, :p_description, :p_image_url, :p_id); END;",
		sql.Named("p_name", category.Name),
		sql.Named("p_description", category.Description),
		sql.Named("p_image_url", category.ImageURL))
	if err != nil {
		return nil, err
	}
	return s.GetCategory(ctx, id)
}

func (s *Store) UpdateCategory(ctx context.Context, id int64, update entity.CategoryUpdate) (*entity.Category, error) {
	current, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(current)

	err = s.callExec(ctx,
		"BEGIN category_update(:p_id, :p_name, :p_description, :p_image_url); END;",
		sql.Named("p_id", id),
		sql.Named("p_name", current.Name),
		sql.Named("p_description", current.Description),
		sql.Named("p_image_url", current.ImageURL))
	if err != nil {
		return nil, err
	}
	return s.GetCategory(ctx, id)
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return s.callDelete(ctx, "BEGIN category_delete(:p_id, :p_deleted); END;",
		sql.Named("p_id", id))
}

// Products

func (s *Store) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	r, err := s.queryCursorOne(ctx, "BEGIN product_get(:p_id, :p_cur); END;",
		sql.Named("p_id", id))
	if err != nil {
		return nil, err
	}
	return productFromRow(r)
}

func (s *Store) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	rows, err := s.queryCursor(ctx, "BEGIN products_list(:p_cur); END;")
	if err != nil {
		return nil, err
	}
	return mapRows(rows, productFromRow)
}

func (s *Store) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	rows, err := s.queryCursor(ctx, "BEGIN products_by_category(:p_category_id, :p_cur); END;",
		sql.Named("p_category_id", categoryID))
	if err != nil {
		return nil, err
	}
	return mapRows(rows, productFromRow)
}

func (s *Store) ListProductsByVendor(ctx context.Context, vendorID int64) ([]*entity.Product, error) {
	rows, err := s.queryCursor(ctx, "BEGIN products_by_vendor(:p_vendor_id, :p_cur); END;",
		sql.Named("p_vendor_id", vendorID))
	if err != nil {
		return nil, err
	}
	return mapRows(rows, productFromRow)
}

func (s *Store) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	rows, err := s.queryCursor(ctx, "BEGIN products_search(:p_query, :p_cur); END;",
		sql.Named("p_query", query))
	if err != nil {
		return nil, err
	}
	return mapRows(rows, productFromRow)
}

func (s *Store) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	id, err := s.callCreate(ctx,
		`BEGIN product_create(:p_name, :p_description, :p_price, :p_stock,
			:p_image_url, :p_category_id, :p_vendor_id,
			:p_is_organic, :p_is_local, :p_id); END;`,
		productBinds(product)...)
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, update entity.ProductUpdate) (*entity.Product, error) {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(current)

	args := append([]interface{}{sql.Named("p_id", id)}, productBinds(current)...)
	err = s.callExec(ctx,
		`BEGIN product_update(:p_id, :p_name, :p_description, :p_price, :p_stock,
			:p_image_url, :p_category_id, :p_vendor_id,
			:p_is_organic, :p_is_local); END;`,
		args...)
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return s.callDelete(ctx, "BEGIN product_delete(:p_id, :p_deleted); END;",
		sql.Named("p_id", id))
}

func productBinds(p *entity.Product) []interface{} {
	return []interface{}{
		sql.Named("p_name", p.Name),
		sql.Named("p_description", p.Description),
		sql.Named("p_price", p.Price),
		sql.Named("p_stock", int64(p.Stock)),
		sql.Named("p_image_url", p.ImageURL),
		sql.Named("p_category_id", fkBind(p.CategoryID)),
		sql.Named("p_vendor_id", fkBind(p.VendorID)),
		sql.Named("p_is_organic", boolBind(p.IsOrganic)),
		sql.Named("p_is_local", boolBind(p.IsLocal)),
	}
}

// fkBind turns the zero id convention for "no reference" into SQL NULL so the
// foreign key constraint stays quiet.
func fkBind(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
