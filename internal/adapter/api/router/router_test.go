package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmstand/internal/adapter/api"
	"farmstand/internal/adapter/api/handler"
	"farmstand/internal/adapter/api/middleware"
	"farmstand/internal/adapter/storage/memory"
	"farmstand/internal/infrastructure/mail"
	"farmstand/internal/usecase"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	store := memory.New()
	require.NoError(t, store.Init(context.Background()))

	authUseCase := usecase.NewAuthUseCase(store, mail.NoopMailer{}, "test-secret", time.Hour)
	catalogUseCase := usecase.NewCatalogUseCase(store)
	vendorUseCase := usecase.NewVendorUseCase(store)
	orderUseCase := usecase.NewOrderUseCase(store)
	reviewUseCase := usecase.NewReviewUseCase(store)

	e := echo.New()
	e.Validator = api.NewValidator()

	Setup(e, Handlers{
		Auth:     handler.NewAuthHandler(authUseCase),
		Category: handler.NewCategoryHandler(catalogUseCase),
		Product:  handler.NewProductHandler(catalogUseCase),
		Vendor:   handler.NewVendorHandler(vendorUseCase),
		Order:    handler.NewOrderHandler(orderUseCase),
		Review:   handler.NewReviewHandler(reviewUseCase),
		Health:   handler.NewHealthHandler("memory"),
	}, middleware.NewAuthMiddleware("test-secret"))

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "memory")
}

func TestRegisterLoginAndProfile(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"ada","email":"ada@example.com","password":"hunter2222"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Password never appears in any payload.
	assert.NotContains(t, rec.Body.String(), "hunter2222")

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"ada","password":"hunter2222"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := dataField(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	rec = doJSON(e, http.MethodGet, "/api/v1/profile", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")

	// No token, no profile.
	rec = doJSON(e, http.MethodGet, "/api/v1/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/profile", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVendorProductOrderFlow(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"farmer","email":"farmer@example.com","password":"growstuff1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	farmerToken, _ := dataField(t, rec)["token"].(string)

	rec = doJSON(e, http.MethodPost, "/api/v1/vendors", farmerToken,
		`{"business_name":"Green Acres","location":"Vermont","tags":["organic"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/api/v1/products", farmerToken,
		`{"name":"Kale","price":3.99,"stock":10,"is_organic":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Buying requires an account of its own.
	rec = doJSON(e, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"buyer","email":"buyer@example.com","password":"cashmoney1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	buyerToken, _ := dataField(t, rec)["token"].(string)

	// A non-vendor cannot list products for sale.
	rec = doJSON(e, http.MethodPost, "/api/v1/products", buyerToken,
		`{"name":"Weeds","price":1,"stock":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/v1/orders", buyerToken,
		`{"items":[{"product_id":1,"quantity":2}],"payment_method":"card"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"pending"`)

	rec = doJSON(e, http.MethodGet, "/api/v1/orders", buyerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":7.98`)

	// Review the product, then read it back anonymously.
	rec = doJSON(e, http.MethodPost, "/api/v1/products/1/reviews", buyerToken,
		`{"rating":5,"title":"Fresh","comment":"Crisp and green."}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/api/v1/products/1/reviews", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fresh")

	rec = doJSON(e, http.MethodGet, "/api/v1/products/search?q=kale", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kale")
}

func TestValidationErrors(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"x","email":"not-an-email","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
