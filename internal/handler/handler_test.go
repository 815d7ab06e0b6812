package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/cart-pricing-engine/internal/discount"
	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
	"github.com/xenking/cart-pricing-engine/internal/pricing"
	"github.com/xenking/cart-pricing-engine/internal/voucher"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newTestRouter() http.Handler {
	table := voucher.NewTable([]voucher.Definition{
		{Code: "SUPER69", Percentage: d("69"), MaxDiscount: d("1000")},
		{
			Code:            "TIER_DISCOUNT",
			Percentage:      d("30"),
			MaxDiscount:     d("800"),
			TierRequirement: customer.TierRegular,
			MinCartValue:    d("2000"),
		},
	})
	svc := pricing.NewService(
		pricing.Config{PremiumBrands: []string{"NIKE", "ADIDAS", "PUMA"}},
		voucher.NewValidator(table),
		discount.NewRegistry(),
	)
	return NewRouter(NewHandler(svc))
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const fullCart = `{
	"items": [
		{"product": {"id": "p1", "brand": "PUMA", "category": "Shoes", "base_price": "1000", "current_price": "1000"}, "quantity": 2},
		{"product": {"id": "p2", "brand": "NIKE", "category": "Shoes", "base_price": "5000", "current_price": "5000"}, "quantity": 1},
		{"product": {"id": "p3", "brand": "ZARA", "category": "Jackets", "base_price": "2000", "current_price": "2000"}, "quantity": 1}
	],
	"customer": {"id": "c1", "name": "Asha", "email": "asha@example.com", "tier": "premium", "loyalty_points": "100"},
	"payment": {"method": "CARD", "bank_name": "ICICI", "card_type": "CREDIT"},
	"voucher_code": "SUPER69"
}`

func TestPriceQuote(t *testing.T) {
	rec := postJSON(t, newTestRouter(), "/api/v1/quotes", fullCart)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		QuoteID          string                     `json:"quote_id"`
		OriginalPrice    decimal.Decimal            `json:"original_price"`
		FinalPrice       decimal.Decimal            `json:"final_price"`
		AppliedDiscounts map[string]decimal.Decimal `json:"applied_discounts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.QuoteID)
	assert.True(t, d("8000").Equal(resp.OriginalPrice))
	assert.True(t, d("5800").Equal(resp.FinalPrice))
	assert.Len(t, resp.AppliedDiscounts, 4)
	assert.True(t, d("1000").Equal(resp.AppliedDiscounts["Voucher SUPER69"]))
}

func TestPriceQuote_BadBody(t *testing.T) {
	rec := postJSON(t, newTestRouter(), "/api/v1/quotes", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriceQuote_InvalidQuantity(t *testing.T) {
	body := `{
		"items": [{"product": {"id": "p1", "brand": "PUMA", "category": "Shoes", "base_price": "10", "current_price": "10"}, "quantity": 0}],
		"customer": {"id": "c1", "tier": "regular"}
	}`
	rec := postJSON(t, newTestRouter(), "/api/v1/quotes", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPriceQuote_CardMissingBank(t *testing.T) {
	body := `{
		"items": [{"product": {"id": "p1", "brand": "PUMA", "category": "Shoes", "base_price": "10", "current_price": "10"}, "quantity": 1}],
		"customer": {"id": "c1", "tier": "regular"},
		"payment": {"method": "CARD"}
	}`
	rec := postJSON(t, newTestRouter(), "/api/v1/quotes", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPriceAdvanced(t *testing.T) {
	body := `{
		"items": [{"product": {"id": "p1", "brand": "PUMA", "category": "Shoes", "base_price": "1000", "current_price": "1000"}, "quantity": 2}],
		"customer": {"id": "c1", "tier": "gold", "loyalty_points": "750"},
		"discounts": [
			{"type": "tier", "params": {"required_tier": "gold", "percentage": "10"}},
			{"type": "loyalty", "params": {"points_threshold": "500", "percentage": "5"}}
		]
	}`
	rec := postJSON(t, newTestRouter(), "/api/v1/quotes/advanced", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		FinalPrice       decimal.Decimal            `json:"final_price"`
		AppliedDiscounts map[string]decimal.Decimal `json:"applied_discounts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.AppliedDiscounts, 2)
	assert.True(t, d("1700").Equal(resp.FinalPrice))
}

func TestPriceAdvanced_UnknownType(t *testing.T) {
	body := `{
		"items": [{"product": {"id": "p1", "brand": "PUMA", "category": "Shoes", "base_price": "10", "current_price": "10"}, "quantity": 1}],
		"customer": {"id": "c1", "tier": "regular"},
		"discounts": [{"type": "cashback", "params": {}}]
	}`
	rec := postJSON(t, newTestRouter(), "/api/v1/quotes/advanced", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateVoucher(t *testing.T) {
	body := `{
		"code": "TIER_DISCOUNT",
		"items": [{"product": {"id": "p1", "brand": "ZARA", "category": "Shoes", "base_price": "2000", "current_price": "2000"}, "quantity": 1}],
		"customer": {"id": "c1", "tier": "regular"}
	}`
	rec := postJSON(t, newTestRouter(), "/api/v1/vouchers/validate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp validateVoucherResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
}

func TestValidateVoucher_Ineligible(t *testing.T) {
	body := `{
		"code": "TIER_DISCOUNT",
		"items": [{"product": {"id": "p1", "brand": "ZARA", "category": "Shoes", "base_price": "2000", "current_price": "2000"}, "quantity": 1}],
		"customer": {"id": "c1", "tier": "budget"}
	}`
	rec := postJSON(t, newTestRouter(), "/api/v1/vouchers/validate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp validateVoucherResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
