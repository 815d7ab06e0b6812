package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/discount"
	"github.com/xenking/cart-pricing-engine/internal/domain/cart"
	"github.com/xenking/cart-pricing-engine/internal/domain/catalog"
	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
	"github.com/xenking/cart-pricing-engine/internal/domain/payment"
	"github.com/xenking/cart-pricing-engine/internal/pricing"
)

// --- Request / Response DTOs ---

type productDTO struct {
	ID           string          `json:"id"`
	Brand        string          `json:"brand"`
	BrandTier    string          `json:"brand_tier,omitempty"`
	Category     string          `json:"category"`
	BasePrice    decimal.Decimal `json:"base_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

type itemDTO struct {
	Product       productDTO       `json:"product"`
	Quantity      int              `json:"quantity"`
	Size          string           `json:"size,omitempty"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

type customerDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Tier          string          `json:"tier"`
	LoyaltyPoints decimal.Decimal `json:"loyalty_points"`
}

type paymentDTO struct {
	Method   string `json:"method"`
	BankName string `json:"bank_name,omitempty"`
	CardType string `json:"card_type,omitempty"`
}

type quoteRequest struct {
	Items       []itemDTO   `json:"items"`
	Customer    customerDTO `json:"customer"`
	Payment     *paymentDTO `json:"payment,omitempty"`
	VoucherCode string      `json:"voucher_code,omitempty"`
}

type advancedQuoteRequest struct {
	Items     []itemDTO         `json:"items"`
	Customer  customerDTO       `json:"customer"`
	Payment   *paymentDTO       `json:"payment,omitempty"`
	Discounts []discount.Config `json:"discounts"`
}

type validateVoucherRequest struct {
	Code     string      `json:"code"`
	Items    []itemDTO   `json:"items"`
	Customer customerDTO `json:"customer"`
}

type quoteResponse struct {
	QuoteID          string              `json:"quote_id"`
	OriginalPrice    decimal.Decimal     `json:"original_price"`
	FinalPrice       decimal.Decimal     `json:"final_price"`
	AppliedDiscounts *discount.Breakdown `json:"applied_discounts"`
	Message          string              `json:"message"`
}

type validateVoucherResponse struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
}

// --- Mapping helpers ---

func (dto itemDTO) toDomain() (cart.Item, bool) {
	if dto.Quantity <= 0 {
		return cart.Item{}, false
	}
	return cart.Item{
		Product: catalog.Product{
			ID:           dto.Product.ID,
			Brand:        dto.Product.Brand,
			BrandTier:    catalog.BrandTier(dto.Product.BrandTier),
			Category:     dto.Product.Category,
			BasePrice:    dto.Product.BasePrice,
			CurrentPrice: dto.Product.CurrentPrice,
		},
		Quantity:      dto.Quantity,
		Size:          dto.Size,
		PriceOverride: dto.PriceOverride,
	}, true
}

func mapItems(dtos []itemDTO) ([]cart.Item, bool) {
	items := make([]cart.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, ok := dto.toDomain()
		if !ok {
			return nil, false
		}
		items = append(items, item)
	}
	return items, true
}

func (dto customerDTO) toDomain() customer.Profile {
	return customer.Profile{
		ID:            dto.ID,
		Name:          dto.Name,
		Email:         dto.Email,
		Tier:          customer.Tier(dto.Tier),
		LoyaltyPoints: dto.LoyaltyPoints,
	}
}

func mapPayment(dto *paymentDTO) (*payment.Info, error) {
	if dto == nil {
		return nil, nil
	}
	return payment.New(payment.Method(dto.Method), dto.BankName, payment.CardType(dto.CardType))
}

func toQuoteResponse(res pricing.Result) quoteResponse {
	return quoteResponse{
		QuoteID:          uuid.New().String(),
		OriginalPrice:    res.OriginalPrice,
		FinalPrice:       res.FinalPrice,
		AppliedDiscounts: res.Applied,
		Message:          res.Message,
	}
}

// --- Handlers ---

// PriceQuote handles POST /api/v1/quotes: the fixed discount pipeline.
func (h *Handler) PriceQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	items, ok := mapItems(req.Items)
	if !ok {
		writeError(w, r, http.StatusUnprocessableEntity, "quantity must be greater than 0")
		return
	}

	pay, err := mapPayment(req.Payment)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res := h.pricing.CalculateCartDiscounts(items, req.Customer.toDomain(), pay, req.VoucherCode)
	writeJSON(w, http.StatusOK, toQuoteResponse(res))
}

// PriceAdvanced handles POST /api/v1/quotes/advanced: the caller supplies
// the discount configurations and the registry builds one rule each.
func (h *Handler) PriceAdvanced(w http.ResponseWriter, r *http.Request) {
	var req advancedQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	items, ok := mapItems(req.Items)
	if !ok {
		writeError(w, r, http.StatusUnprocessableEntity, "quantity must be greater than 0")
		return
	}

	pay, err := mapPayment(req.Payment)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := h.pricing.ApplyAdvancedDiscounts(items, req.Customer.toDomain(), pay, req.Discounts)
	if err != nil {
		// Bad discount configuration is a caller error, not a server one.
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toQuoteResponse(res))
}

// ValidateVoucher handles POST /api/v1/vouchers/validate. Ineligibility
// is reported as valid=false, never as an HTTP error.
func (h *Handler) ValidateVoucher(w http.ResponseWriter, r *http.Request) {
	var req validateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	items, ok := mapItems(req.Items)
	if !ok {
		writeError(w, r, http.StatusUnprocessableEntity, "quantity must be greater than 0")
		return
	}

	valid := h.pricing.ValidateDiscountCode(req.Code, items, req.Customer.toDomain())
	writeJSON(w, http.StatusOK, validateVoucherResponse{Code: req.Code, Valid: valid})
}
