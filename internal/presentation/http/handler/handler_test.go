package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Unimplemented methods panic through the nil embedded interface.
type stubItemRepo struct {
	repository.ItemRepository
	items []entity.Item
}

func (r stubItemRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	var out []entity.Item
	for _, item := range r.items {
		for _, id := range ids {
			if item.ID == id {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

type stubConfigRepo struct {
	repository.ConfigurationRepository
	cfg *entity.Configuration
}

func (r stubConfigRepo) Get(context.Context) (*entity.Configuration, error) {
	return r.cfg, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func serve(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func quoteRouter(cfg *entity.Configuration, items ...entity.Item) *gin.Engine {
	// Monday morning in the shop zone, before the same day cutoff.
	clock := func() time.Time {
		return time.Date(2025, 8, 4, 9, 15, 0, 0, time.FixedZone("PKT", 5*3600))
	}
	bookings := service.NewBookingService(nil, stubItemRepo{items: items}, nil, stubConfigRepo{cfg: cfg}, nil, nil, nil, clock)
	h := NewBookingHandler(bookings, nil)

	router := gin.New()
	router.POST("/bookings/quote", h.Quote)
	router.POST("/bookings", h.Create)
	router.GET("/bookings/:id", h.Get)
	return router
}

func TestQuoteHandler(t *testing.T) {
	shirt := entity.Item{
		ID:            uuid.New(),
		Code:          "SHRT",
		Name:          "Shirt",
		UnitsPerPiece: 1,
		UnitPrice:     decimal.NewFromInt(100),
		Status:        enum.ItemStatusActive,
	}
	cfg := &entity.Configuration{
		SalesTax:                decimal.NewFromInt(10),
		NumberOfDaysForNormal:   3,
		NumberOfDaysForUrgent:   1,
		ChargesForNormalUrgent:  decimal.NewFromInt(50),
		ChargesForSameDayUrgent: decimal.NewFromInt(100),
		Hangers:                 decimal.NewFromInt(20),
	}

	t.Run("prices a normal booking", func(t *testing.T) {
		router := quoteRouter(cfg, shirt)
		body := `{"items":[{"id":"` + shirt.ID.String() + `","units":2}],"delivery_type":"normal","hanger_units":1}`

		rec, env := serve(t, router, http.MethodPost, "/bookings/quote", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, env.Success)

		var quote struct {
			AmountTotal    json.Number `json:"amount_total"`
			SalesTaxAmount json.Number `json:"sales_tax_amount"`
			HangerAmount   json.Number `json:"hanger_amount"`
			TotalAmount    json.Number `json:"total_amount"`
			NumberOfUnits  int         `json:"number_of_units"`
			DeliveryDate   *time.Time  `json:"delivery_date"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &quote))

		assert.Equal(t, "200.00", quote.AmountTotal.String())
		assert.Equal(t, "20.00", quote.SalesTaxAmount.String())
		assert.Equal(t, "20.00", quote.HangerAmount.String())
		assert.Equal(t, "240.00", quote.TotalAmount.String())
		assert.Equal(t, 2, quote.NumberOfUnits)
		require.NotNil(t, quote.DeliveryDate)
		assert.Equal(t, 7, quote.DeliveryDate.Day(), "three days from Monday")
	})

	t.Run("missing configuration", func(t *testing.T) {
		router := quoteRouter(nil, shirt)
		body := `{"items":[{"id":"` + shirt.ID.String() + `","units":1}],"delivery_type":"normal"}`

		rec, env := serve(t, router, http.MethodPost, "/bookings/quote", body)
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
		assert.Equal(t, "Configuration settings not found", env.Message)
	})

	t.Run("unknown item names the offending line", func(t *testing.T) {
		router := quoteRouter(cfg, shirt)
		body := `{"items":[{"id":"` + uuid.NewString() + `","units":1}],"delivery_type":"normal"}`

		rec, env := serve(t, router, http.MethodPost, "/bookings/quote", body)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		require.NotEmpty(t, env.Errors)
		assert.Equal(t, "items.0.id", env.Errors[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		router := quoteRouter(cfg, shirt)
		rec, _ := serve(t, router, http.MethodPost, "/bookings/quote", `{"items":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateBookingRequiresAuthenticatedUser(t *testing.T) {
	router := quoteRouter(nil)
	rec, _ := serve(t, router, http.MethodPost, "/bookings", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidIDParam(t *testing.T) {
	router := quoteRouter(nil)
	rec, env := serve(t, router, http.MethodGet, "/bookings/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", env.Message)
}

func TestBindJSONReportsFieldErrors(t *testing.T) {
	h := NewCustomerHandler(service.NewCustomerService(nil))
	router := gin.New()
	router.POST("/customers", h.Create)

	rec, env := serve(t, router, http.MethodPost, "/customers", `{"customer_type":"vip"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "phone", env.Errors[0].Field)
	assert.Equal(t, "The phone field is required.", env.Errors[0].Message)
}

func TestBindJSONSnakeCasesFieldNames(t *testing.T) {
	h := NewUserHandler(service.NewUserService(nil, nil, nil, nil))
	router := gin.New()
	router.POST("/users", h.Create)

	body := `{"name":"Ali","email":"ali@example.com","password":"secret123","branch_code":"` + strings.Repeat("X", 21) + `"}`
	rec, env := serve(t, router, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "branch_code", env.Errors[0].Field)
	assert.Equal(t, "The branch code may not be greater than 20.", env.Errors[0].Message)
}

func TestConfigurationHandlerMissing(t *testing.T) {
	h := NewConfigurationHandler(service.NewConfigurationService(stubConfigRepo{}))
	router := gin.New()
	router.GET("/configuration", h.Get)

	rec, env := serve(t, router, http.MethodGet, "/configuration", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Configuration settings not found", env.Message)
}

func TestLocationHandlerRejectsOutOfRangeCoordinates(t *testing.T) {
	h := NewLocationHandler(service.NewLocationService(nil))
	router := gin.New()
	router.POST("/locations", h.Create)

	rec, env := serve(t, router, http.MethodPost, "/locations", `{"name":"Gulberg","latitude":91,"longitude":"74.35"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "latitude", env.Errors[0].Field)

	rec, env = serve(t, router, http.MethodPost, "/locations", `{"latitude":31.5,"longitude":74.35}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "name", env.Errors[0].Field)
}

func TestSettingHandlerRejectsBadColor(t *testing.T) {
	h := NewSettingHandler(service.NewSettingService(nil, "Shop"))
	router := gin.New()
	router.PUT("/settings", h.Save)

	rec, env := serve(t, router, http.MethodPut, "/settings", `{"app_name":"Zay","color":"#zzzzzz"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "color", env.Errors[0].Field)
}
