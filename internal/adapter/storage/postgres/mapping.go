package postgres

import (
	"strings"

	"farmstand/internal/domain/entity"
)

const tagSeparator = ","

func toUserEntity(m *userModel) *entity.User {
	return &entity.User{
		ID:                m.ID,
		Username:          m.Username,
		Email:             m.Email,
		Password:          m.Password,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		PhoneNumber:       m.PhoneNumber,
		Street:            m.Street,
		City:              m.City,
		State:             m.State,
		ZipCode:           m.ZipCode,
		IsVendor:          m.IsVendor,
		IsVerified:        m.IsVerified,
		VerificationToken: m.VerificationToken,
		ResetToken:        m.ResetToken,
		ResetTokenExpiry:  m.ResetTokenExpiry,
		CreatedAt:         m.CreatedAt,
	}
}

func fromUserEntity(u *entity.User) *userModel {
	return &userModel{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Password:          u.Password,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		PhoneNumber:       u.PhoneNumber,
		Street:            u.Street,
		City:              u.City,
		State:             u.State,
		ZipCode:           u.ZipCode,
		IsVendor:          u.IsVendor,
		IsVerified:        u.IsVerified,
		VerificationToken: u.VerificationToken,
		ResetToken:        u.ResetToken,
		ResetTokenExpiry:  u.ResetTokenExpiry,
		CreatedAt:         u.CreatedAt,
	}
}

func toCategoryEntity(m *categoryModel) *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ImageURL:    m.ImageURL,
	}
}

func fromCategoryEntity(c *entity.Category) *categoryModel {
	return &categoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

func toVendorEntity(m *vendorModel) *entity.Vendor {
	return &entity.Vendor{
		ID:           m.ID,
		UserID:       m.UserID,
		BusinessName: m.BusinessName,
		Description:  m.Description,
		Location:     m.Location,
		Tags:         splitTags(m.Tags),
		LogoURL:      m.LogoURL,
		BannerURL:    m.BannerURL,
		Rating:       m.Rating,
	}
}

func fromVendorEntity(v *entity.Vendor) *vendorModel {
	return &vendorModel{
		ID:           v.ID,
		UserID:       v.UserID,
		BusinessName: v.BusinessName,
		Description:  v.Description,
		Location:     v.Location,
		Tags:         joinTags(v.Tags),
		LogoURL:      v.LogoURL,
		BannerURL:    v.BannerURL,
		Rating:       v.Rating,
	}
}

func toProductEntity(m *productModel) *entity.Product {
	p := &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		ImageURL:    m.ImageURL,
		IsOrganic:   m.IsOrganic,
		IsLocal:     m.IsLocal,
		CreatedAt:   m.CreatedAt,
	}
	if m.CategoryID != nil {
		p.CategoryID = *m.CategoryID
	}
	if m.VendorID != nil {
		p.VendorID = *m.VendorID
	}
	return p
}

func fromProductEntity(p *entity.Product) *productModel {
	m := &productModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsOrganic:   p.IsOrganic,
		IsLocal:     p.IsLocal,
		CreatedAt:   p.CreatedAt,
	}
	if p.CategoryID != 0 {
		id := p.CategoryID
		m.CategoryID = &id
	}
	if p.VendorID != 0 {
		id := p.VendorID
		m.VendorID = &id
	}
	return m
}

func toOrderEntity(m *orderModel) *entity.Order {
	return &entity.Order{
		ID:              m.ID,
		UserID:          m.UserID,
		Status:          entity.OrderStatus(m.Status),
		Total:           m.Total,
		ShippingStreet:  m.ShippingStreet,
		ShippingCity:    m.ShippingCity,
		ShippingState:   m.ShippingState,
		ShippingZipCode: m.ShippingZipCode,
		PaymentMethod:   m.PaymentMethod,
		PaymentStatus:   m.PaymentStatus,
		CreatedAt:       m.CreatedAt,
	}
}

func fromOrderEntity(o *entity.Order) *orderModel {
	return &orderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		ShippingStreet:  o.ShippingStreet,
		ShippingCity:    o.ShippingCity,
		ShippingState:   o.ShippingState,
		ShippingZipCode: o.ShippingZipCode,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		CreatedAt:       o.CreatedAt,
	}
}

func toOrderItemEntity(m *orderItemModel) *entity.OrderItem {
	return &entity.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Price:     m.Price,
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, tagSeparator)
}

func joinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

// Column maps for partial updates: only fields present in the update struct
// reach SET, so absent fields are never nulled.

func userUpdateColumns(up entity.UserUpdate) map[string]interface{} {
	cols := map[string]interface{}{}
	if up.Username != nil {
		cols["username"] = *up.Username
	}
	if up.Email != nil {
		cols["email"] = *up.Email
	}
	if up.Password != nil {
		cols["password"] = *up.Password
	}
	if up.FirstName != nil {
		cols["first_name"] = *up.FirstName
	}
	if up.LastName != nil {
		cols["last_name"] = *up.LastName
	}
	if up.PhoneNumber != nil {
		cols["phone_number"] = *up.PhoneNumber
	}
	if up.Street != nil {
		cols["street"] = *up.Street
	}
	if up.City != nil {
		cols["city"] = *up.City
	}
	if up.State != nil {
		cols["state"] = *up.State
	}
	if up.ZipCode != nil {
		cols["zip_code"] = *up.ZipCode
	}
	if up.IsVendor != nil {
		cols["is_vendor"] = *up.IsVendor
	}
	if up.IsVerified != nil {
		cols["is_verified"] = *up.IsVerified
	}
	if up.VerificationToken != nil {
		cols["verification_token"] = *up.VerificationToken
	}
	if up.ResetToken != nil {
		cols["reset_token"] = *up.ResetToken
		if *up.ResetToken == "" {
			cols["reset_token_expiry"] = nil
		}
	}
	if up.ResetTokenExpiry != nil {
		cols["reset_token_expiry"] = *up.ResetTokenExpiry
	}
	return cols
}

func categoryUpdateColumns(up entity.CategoryUpdate) map[string]interface{} {
	cols := map[string]interface{}{}
	if up.Name != nil {
		cols["name"] = *up.Name
	}
	if up.Description != nil {
		cols["description"] = *up.Description
	}
	if up.ImageURL != nil {
		cols["image_url"] = *up.ImageURL
	}
	return cols
}

func vendorUpdateColumns(up entity.VendorUpdate) map[string]interface{} {
	cols := map[string]interface{}{}
	if up.BusinessName != nil {
		cols["business_name"] = *up.BusinessName
	}
	if up.Description != nil {
		cols["description"] = *up.Description
	}
	if up.Location != nil {
		cols["location"] = *up.Location
	}
	if up.Tags != nil {
		cols["tags"] = joinTags(*up.Tags)
	}
	if up.LogoURL != nil {
		cols["logo_url"] = *up.LogoURL
	}
	if up.BannerURL != nil {
		cols["banner_url"] = *up.BannerURL
	}
	if up.Rating != nil {
		cols["rating"] = *up.Rating
	}
	return cols
}

func productUpdateColumns(up entity.ProductUpdate) map[string]interface{} {
	cols := map[string]interface{}{}
	if up.Name != nil {
		cols["name"] = *up.Name
	}
	if up.Description != nil {
		cols["description"] = *up.Description
	}
	if up.Price != nil {
		cols["price"] = *up.Price
	}
	if up.Stock != nil {
		cols["stock"] = *up.Stock
	}
	if up.ImageURL != nil {
		cols["image_url"] = *up.ImageURL
	}
	if up.CategoryID != nil {
		if *up.CategoryID == 0 {
			cols["category_id"] = nil
		} else {
			cols["category_id"] = *up.CategoryID
		}
	}
	if up.VendorID != nil {
		if *up.VendorID == 0 {
			cols["vendor_id"] = nil
		} else {
			cols["vendor_id"] = *up.VendorID
		}
	}
	if up.IsOrganic != nil {
		cols["is_organic"] = *up.IsOrganic
	}
	if up.IsLocal != nil {
		cols["is_local"] = *up.IsLocal
	}
	return cols
}

func orderUpdateColumns(up entity.OrderUpdate) map[string]interface{} {
	cols := map[string]interface{}{}
	if up.Status != nil {
		cols["status"] = string(*up.Status)
	}
	if up.Total != nil {
		cols["total"] = *up.Total
	}
	if up.ShippingStreet != nil {
		cols["shipping_street"] = *up.ShippingStreet
	}
	if up.ShippingCity != nil {
		cols["shipping_city"] = *up.ShippingCity
	}
	if up.ShippingState != nil {
		cols["shipping_state"] = *up.ShippingState
	}
	if up.ShippingZipCode != nil {
		cols["shipping_zip_code"] = *up.ShippingZipCode
	}
	if up.PaymentMethod != nil {
		cols["payment_method"] = *up.PaymentMethod
	}
	if up.PaymentStatus != nil {
		cols["payment_status"] = *up.PaymentStatus
	}
	return cols
}
