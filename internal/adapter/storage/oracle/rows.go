package oracle

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

// row is one cursor row keyed by upper-case column name, the form Oracle
// reports identifiers in.
type row map[string]interface{}

func drainRows(rows *sql.Rows) ([]row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns: %v", storage.ErrDecode, err)
	}

	var out []row
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", storage.ErrDecode, err)
		}
		r := make(row, len(cols))
		for i, col := range cols {
			r[strings.ToUpper(col)] = values[i]
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Column coercions. A missing or wrongly typed column is a loud ErrDecode,
// never a silently zeroed field.

func colString(r row, key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", nil
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("%w: column %s has type %T, want string", storage.ErrDecode, key, v)
	}
}

func colInt64(r row, key string) (int64, error) {
	v, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("%w: column %s missing", storage.ErrDecode, key)
	}
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: column %s value %q is not numeric", storage.ErrDecode, key, n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: column %s has type %T, want number", storage.ErrDecode, key, v)
	}
}

func colFloat(r row, key string) (float64, error) {
	v, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("%w: column %s missing", storage.ErrDecode, key)
	}
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: column %s value %q is not numeric", storage.ErrDecode, key, n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: column %s has type %T, want number", storage.ErrDecode, key, v)
	}
}

// colBool reads the NUMBER(1) 0/1 convention the schema uses for booleans.
func colBool(r row, key string) (bool, error) {
	n, err := colInt64(r, key)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func colTime(r row, key string) (time.Time, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return time.Time{}, nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: column %s has type %T, want time", storage.ErrDecode, key, v)
	}
	return t, nil
}

func colTimePtr(r row, key string) (*time.Time, error) {
	t, err := colTime(r, key)
	if err != nil {
		return nil, err
	}
	if t.IsZero() {
		return nil, nil
	}
	return &t, nil
}

func boolBind(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func timeBind(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func mapRows[T any](rows []row, fn func(row) (*T, error)) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		e, err := fn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Entity mappers. Every field is mapped explicitly; nothing is inferred
// from struct tags.

func userFromRow(r row) (*entity.User, error) {
	var u entity.User
	var err error
	if u.ID, err = colInt64(r, "ID"); err != nil {
		return nil, err
	}
	if u.Username, err = colString(r, "USERNAME"); err != nil {
		return nil, err
	}
	if u.Email, err = colString(r, "EMAIL"); err != nil {
		return nil, err
	}
	if u.Password, err = colString(r, "PASSWORD"); err != nil {
		return nil, err
	}
	if u.FirstName, err = colString(r, "FIRST_NAME"); err != nil {
		return nil, err
	}
	if u.LastName, err = colString(r, "LAST_NAME"); err != nil {
		return nil, err
	}
	if u.PhoneNumber, err = colString(r, "PHONE_NUMBER"); err != nil {
		return nil, err
	}
	if u.Street, err = colString(r, "STREET"); err != nil {
		return nil, err
	}
	if u.City, err = colString(r, "CITY"); err != nil {
		return nil, err
	}
	if u.State, err = colString(r, "STATE"); err != nil {
		return nil, err
	}
	if u.ZipCode, err = colString(r, "ZIP_CODE"); err != nil {
		return nil, err
	}
	if u.IsVendor, err = colBool(r, "IS_VENDOR"); err != nil {
		return nil, err
	}
	if u.IsVerified, err = colBool(r, "IS_VERIFIED"); err != nil {
		return nil, err
	}
	if u.VerificationToken, err = colString(r, "VERIFICATION_TOKEN"); err != nil {
		return nil, err
	}
	if u.ResetToken, err = colString(r, "RESET_TOKEN"); err != nil {
		return nil, err
	}
	if u.ResetTokenExpiry, err = colTimePtr(r, "RESET_TOKEN_EXPIRY"); err != nil {
		return nil, err
	}
	if u.CreatedAt, err = colTime(r, "CREATED_AT"); err != nil {
		return nil, err
	}
	return &u, nil
}

func categoryFromRow(r row) (*entity.Category, error) {
	var c entity.Category
	var err error
	if c.ID, err = colInt64(r, "ID"); err != nil {
		return nil, err
	}
	if c.Name, err = colString(r, "NAME"); err != nil {
		return nil, err
	}
	if c.Description, err = colString(r, "DESCRIPTION"); err != nil {
		return nil, err
	}
	if c.ImageURL, err = colString(r, "IMAGE_URL"); err != nil {
		return nil, err
	}
	return &c, nil
}

func productFromRow(r row) (*entity.Product, error) {
	var p entity.Product
	var err error
	if p.ID, err = colInt64(r, "ID"); err != nil {
		return nil, err
	}
	if p.Name, err = colString(r, "NAME"); err != nil {
		return nil, err
	}
	if p.Description, err = colString(r, "DESCRIPTION"); err != nil {
		return nil, err
	}
	if p.Price, err = colFloat(r, "PRICE"); err != nil {
		return nil, err
	}
	stock, err := colInt64(r, "STOCK")
	if err != nil {
		return nil, err
	}
	p.Stock = int(stock)
	if p.ImageURL, err = colString(r, "IMAGE_URL"); err != nil {
		return nil, err
	}
	if p.CategoryID, err = colInt64(r, "CATEGORY_ID"); err != nil {
		return nil, err
	}
	if p.VendorID, err = colInt64(r, "VENDOR_ID"); err != nil {
		return nil, err
	}
	if p.IsOrganic, err = colBool(r, "IS_ORGANIC"); err != nil {
		return nil, err
	}
	if p.IsLocal, err = colBool(r, "IS_LOCAL"); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = colTime(r, "CREATED_AT"); err != nil {
		return nil, err
	}
	return &p, nil
}

func vendorFromRow(r row) (*entity.Vendor, error) {
	var v entity.Vendor
	var err error
	if v.ID, err = colInt64(r, "ID"); err != nil {
		return nil, err
	}
	if v.UserID, err = colInt64(r, "USER_ID"); err != nil {
		return nil, err
	}
	if v.BusinessName, err = colString(r, "BUSINESS_NAME"); err != nil {
		return nil, err
	}
	if v.Description, err = colString(r, "DESCRIPTION"); err != nil {
		return nil, err
	}
	if v.Location, err = colString(r, "LOCATION"); err != nil {
		return nil, err
	}
	tags, err := colString(r, "TAGS")
	if err != nil {
		return nil, err
	}
	if tags != "" {
		v.Tags = strings.Split(tags, ",")
	}
	if v.LogoURL, err = colString(r, "LOGO_URL"); err != nil {
		return nil, err
	}
	if v.BannerURL, err = colString(r, "BANNER_URL"); err != nil {
		return nil, err
	}
	if v.Rating, err = colFloat(r, "RATING"); err != nil {
		return nil, err
	}
	return &v, nil
}

func orderFromRow(r row) (*entity.Order, error) {
	var o entity.Order
	var err error
	if o.ID, err = colInt64(r, "ID"); err != nil {
		return nil, err
	}
	if o.UserID, err = colInt64(r, "USER_ID"); err != nil {
		return nil, err
	}
	status, err := colString(r, "STATUS")
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	if o.Total, err = colFloat(r, "TOTAL"); err != nil {
		return nil, err
	}
	if o.ShippingStreet, err = colString(r, "SHIPPING_STREET"); err != nil {
		return nil, err
	}
	if o.ShippingCity, err = colString(r, "SHIPPING_CITY"); err != nil {
		return nil, err
	}
	if o.ShippingState, err = colString(r, "SHIPPING_STATE"); err != nil {
		return nil, err
	}
	if o.ShippingZipCode, err = colString(r, "SHIPPING_ZIP_CODE"); err != nil {
		return nil, err
	}
	if o.PaymentMethod, err = colString(r, "PAYMENT_METHOD"); err != nil {
		return nil, err
	}
	if o.PaymentStatus, err = colString(r, "PAYMENT_STATUS"); err != nil {
		return nil, err
	}
	if o.CreatedAt, err = colTime(r, "CREATED_AT"); err != nil {
		return nil, err
	}
	return &o, nil
}

func orderItemFromRow(r row) (*entity.OrderItem, error) {
	var it entity.OrderItem
	var err error
	if it.ID, err = colInt64(r, "ID"); err != nil {
		return nil, err
	}
	if it.OrderID, err = colInt64(r, "ORDER_ID"); err != nil {
		return nil, err
	}
	if it.ProductID, err = colInt64(r, "PRODUCT_ID"); err != nil {
		return nil, err
	}
	qty, err := colInt64(r, "QUANTITY")
	if err != nil {
		return nil, err
	}
	it.Quantity = int(qty)
	if it.Price, err = colFloat(r, "PRICE"); err != nil {
		return nil, err
	}
	return &it, nil
}

func reviewFromRow(r row) (*entity.Review, error) {
	var rv entity.Review
	var err error
	if rv.ID, err = colString(r, "ID"); err != nil {
		return nil, err
	}
	if rv.ProductID, err = colInt64(r, "PRODUCT_ID"); err != nil {
		return nil, err
	}
	rating, err := colInt64(r, "RATING")
	if err != nil {
		return nil, err
	}
	rv.Rating = int(rating)
	if rv.UserID, err = colInt64(r, "USER_ID"); err != nil {
		return nil, err
	}
	if rv.Title, err = colString(r, "TITLE"); err != nil {
		return nil, err
	}
	if rv.Comment, err = colString(r, "REVIEW_BODY"); err != nil {
		return nil, err
	}
	if rv.CreatedAt, err = colTime(r, "CREATED_AT"); err != nil {
		return nil, err
	}
	if rv.UpdatedAt, err = colTime(r, "UPDATED_AT"); err != nil {
		return nil, err
	}
	return &rv, nil
}
