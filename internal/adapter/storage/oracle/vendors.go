package oracle

import (
	"context"
	"database/sql"
	"strings"

	"farmstand/internal/domain/entity"
)

func (s *Store) GetVendor(ctx context.Context, id int64) (*entity.Vendor, error) {
	r, err := s.queryCursorOne(ctx, "BEGIN vendor_get(:p_id, :p_cur); END;",
		sql.Named("p_id", id))
	if err != nil {
		return nil, err
	}
	return vendorFromRow(r)
}

func (s *Store) GetVendorByUser(ctx context.Context, userID int64) (*entity.Vendor, error) {
	r, err := s.queryCursorOne(ctx, "BEGIN vendor_get_by_user(:p_user_id, :p_cur); END;",
		sql.Named("p_user_id", userID))
	if err != nil {
		return nil, err
	}
	return vendorFromRow(r)
}

func (s *Store) ListVendors(ctx context.Context) ([]*entity.Vendor, error) {
	rows, err := s.queryCursor(ctx, "BEGIN vendors_list(:p_cur); END;")
	if err != nil {
		return nil, err
	}
	return mapRows(rows, vendorFromRow)
}

func (s *Store) CreateVendor(ctx context.Context, vendor *entity.Vendor) (*entity.Vendor, error) {
	id, err := s.callCreate(ctx,
		`BEGIN vendor_create(:p_user_id, :p_business_name, :p_description,
			:p_location, :p_tags, :p_logo_url, :p_banner_url, :p_rating, :p_id); END;`,
		sql.Named("p_user_id", vendor.UserID),
		sql.Named("p_business_name", vendor.BusinessName),
		sql.Named("p_description", vendor.Description),
		sql.Named("p_location", vendor.Location),
		sql.Named("p_tags", strings.Join(vendor.Tags, ",")),
		sql.Named("p_logo_url", vendor.LogoURL),
		sql.Named("p_banner_url", vendor.BannerURL),
		sql.Named("p_rating", vendor.Rating))
	if err != nil {
		return nil, err
	}
	return s.GetVendor(ctx, id)
}

func (s *Store) UpdateVendor(ctx context.Context, id int64, update entity.VendorUpdate) (*entity.Vendor, error) {
	current, err := s.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(current)

	err = s.callExec(ctx,
		`BEGIN vendor_update(:p_id, :p_business_name, :p_description,
			:p_location, :p_tags, :p_logo_url, :p_banner_url, :p_rating); END;`,
		sql.Named("p_id", id),
		sql.Named("p_business_name", current.BusinessName),
		sql.Named("p_description", current.Description),
		sql.Named("p_location", current.Location),
		sql.Named("p_tags", strings.Join(current.Tags, ",")),
		sql.Named("p_logo_url", current.LogoURL),
		sql.Named("p_banner_url", current.BannerURL),
		sql.Named("p_rating", current.Rating))
	if err != nil {
		return nil, err
	}
	return s.GetVendor(ctx, id)
}

func (s *Store) DeleteVendor(ctx context.Context, id int64) (bool, error) {
	return s.callDelete(ctx, "BEGIN vendor_delete(:p_id, :p_deleted); END;",
		sql.Named("p_id", id))
}
