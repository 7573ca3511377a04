package postgres

import (
	"time"
)

// The physical schema matches the logical entity model field for field. The
// predecessor of this backend accumulated column drift and worked around it
// with raw SQL next to the query builder; unifying the schema removes the
// need for both.

type userModel struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	Username          string `gorm:"size:64;uniqueIndex;not null"`
	Email             string `gorm:"size:255;uniqueIndex;not null"`
	Password          string `gorm:"size:255;not null"`
	FirstName         string `gorm:"size:64"`
	LastName          string `gorm:"size:64"`
	PhoneNumber       string `gorm:"size:32"`
	Street            string `gorm:"size:255"`
	City              string `gorm:"size:64"`
	State             string `gorm:"size:32"`
	ZipCode           string `gorm:"size:16"`
	IsVendor          bool
	IsVerified        bool
	VerificationToken string `gorm:"size:64;index"`
	ResetToken        string `gorm:"size:64;index"`
	ResetTokenExpiry  *time.Time
	CreatedAt         time.Time
}

func (userModel) TableName() string { return "users" }

type categoryModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:512"`
}

func (categoryModel) TableName() string { return "categories" }

type vendorModel struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	UserID       int64 `gorm:"uniqueIndex;not null"`
	User         userModel
	BusinessName string `gorm:"size:128;not null"`
	Description  string `gorm:"type:text"`
	Location     string `gorm:"size:255"`
	// Tags keep their order; a join table would be overkill for a short
	// display list.
	Tags      string `gorm:"type:text"`
	LogoURL   string `gorm:"size:512"`
	BannerURL string `gorm:"size:512"`
	Rating    float64
}

func (vendorModel) TableName() string { return "vendors" }

type productModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:255;not null;index"`
	Description string `gorm:"type:text"`
	Price       float64
	Stock       int
	ImageURL    string `gorm:"size:512"`
	CategoryID  *int64 `gorm:"index"`
	Category    *categoryModel
	VendorID    *int64 `gorm:"index"`
	Vendor      *vendorModel
	IsOrganic   bool
	IsLocal     bool
	CreatedAt   time.Time
}

func (productModel) TableName() string { return "products" }

type orderModel struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	UserID          int64  `gorm:"index;not null"`
	User            userModel
	Status          string `gorm:"size:32;not null"`
	Total           float64
	ShippingStreet  string `gorm:"size:255"`
	ShippingCity    string `gorm:"size:64"`
	ShippingState   string `gorm:"size:32"`
	ShippingZipCode string `gorm:"size:16"`
	PaymentMethod   string `gorm:"size:64"`
	PaymentStatus   string `gorm:"size:32"`
	CreatedAt       time.Time
}

func (orderModel) TableName() string { return "orders" }

type orderItemModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	OrderID   int64 `gorm:"index;not null"`
	Order     orderModel
	ProductID int64 `gorm:"not null"`
	Product   productModel
	Quantity  int
	Price     float64
}

func (orderItemModel) TableName() string { return "order_items" }
