package oracle

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

func TestColumnCoercions(t *testing.T) {
	r := row{
		"NAME":   "kale",
		"RAW":    []byte("bytes"),
		"COUNT":  int64(3),
		"STOCK":  "42",
		"PRICE":  3.99,
		"ACTIVE": int64(1),
		"EMPTY":  nil,
	}

	s, err := colString(r, "NAME")
	require.NoError(t, err)
	assert.Equal(t, "kale", s)

	s, err = colString(r, "RAW")
	require.NoError(t, err)
	assert.Equal(t, "bytes", s)

	s, err = colString(r, "EMPTY")
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = colString(r, "MISSING")
	require.NoError(t, err)
	assert.Equal(t, "", s)

	n, err := colInt64(r, "COUNT")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// go-ora reports wide NUMBER columns as strings.
	n, err = colInt64(r, "STOCK")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	f, err := colFloat(r, "PRICE")
	require.NoError(t, err)
	assert.Equal(t, 3.99, f)

	b, err := colBool(r, "ACTIVE")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = colBool(r, "EMPTY")
	require.NoError(t, err)
	assert.False(t, b)
}

func TestColumnCoercionErrors(t *testing.T) {
	r := row{"NAME": int64(7), "COUNT": "not-a-number"}

	_, err := colString(r, "NAME")
	assert.ErrorIs(t, err, storage.ErrDecode)

	_, err = colInt64(r, "COUNT")
	assert.ErrorIs(t, err, storage.ErrDecode)

	_, err = colInt64(r, "MISSING")
	assert.ErrorIs(t, err, storage.ErrDecode)

	_, err = colTime(r, "NAME")
	assert.ErrorIs(t, err, storage.ErrDecode)
}

func TestUserFromRow(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := created.Add(time.Hour)
	r := row{
		"ID":                 int64(7),
		"USERNAME":           "greenfarm",
		"EMAIL":              "farm@example.com",
		"PASSWORD":           "hash",
		"FIRST_NAME":         "Ada",
		"LAST_NAME":          "Greene",
		"PHONE_NUMBER":       nil,
		"STREET":             nil,
		"CITY":               nil,
		"STATE":              nil,
		"ZIP_CODE":           nil,
		"IS_VENDOR":          int64(1),
		"IS_VERIFIED":        int64(0),
		"VERIFICATION_TOKEN": "tok",
		"RESET_TOKEN":        nil,
		"RESET_TOKEN_EXPIRY": expiry,
		"CREATED_AT":         created,
	}

	u, err := userFromRow(r)
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "greenfarm", u.Username)
	assert.True(t, u.IsVendor)
	assert.False(t, u.IsVerified)
	assert.Equal(t, "tok", u.VerificationToken)
	assert.Equal(t, "", u.ResetToken)
	require.NotNil(t, u.ResetTokenExpiry)
	assert.Equal(t, expiry, *u.ResetTokenExpiry)
	assert.Equal(t, created, u.CreatedAt)
}

func TestVendorTagsRoundTrip(t *testing.T) {
	r := row{
		"ID":            int64(1),
		"USER_ID":       int64(2),
		"BUSINESS_NAME": "Green Acres",
		"DESCRIPTION":   nil,
		"LOCATION":      nil,
		"TAGS":          "organic,local",
		"LOGO_URL":      nil,
		"BANNER_URL":    nil,
		"RATING":        4.5,
	}

	v, err := vendorFromRow(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"organic", "local"}, v.Tags)

	r["TAGS"] = nil
	v, err = vendorFromRow(r)
	require.NoError(t, err)
	assert.Empty(t, v.Tags)
}

func TestOrderBindsDefaultStatus(t *testing.T) {
	status, ok := namedBind(orderBinds(&entity.Order{UserID: 1}), "p_status").(string)
	require.True(t, ok)
	assert.Equal(t, string(entity.OrderPending), status)

	status, ok = namedBind(orderBinds(&entity.Order{UserID: 1, Status: entity.OrderShipped}), "p_status").(string)
	require.True(t, ok)
	assert.Equal(t, string(entity.OrderShipped), status)
}

func namedBind(binds []interface{}, name string) interface{} {
	for _, b := range binds {
		if arg, ok := b.(sql.NamedArg); ok && arg.Name == name {
			return arg.Value
		}
	}
	return nil
}

func TestSplitStatements(t *testing.T) {
	script := "CREATE TABLE a (id NUMBER)\n/\nBEGIN\n  NULL;\nEND;\n/\n"
	stmts := splitStatements(script)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (id NUMBER)", stmts[0])
	assert.Equal(t, "BEGIN\n  NULL;\nEND;", stmts[1])
}
