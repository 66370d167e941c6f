package controllers

import (
	"net/http"
	"strings"

	"github.com/migueldelacruz-dev/vapetrack-backend/api/responses"
	"github.com/migueldelacruz-dev/vapetrack-backend/api/validators"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/sales"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/types"
)

type saleBulkLineRequest struct {
	ItemID   string        `json:"item_id" validate:"required"`
	Quantity types.FlexInt `json:"quantity"`
}

type saleCreateRequest struct {
	ItemID        string                `json:"item_id"`
	Quantity      types.FlexInt         `json:"quantity_sold"`
	AppliedPrice  types.FlexDecimal     `json:"applied_price"`
	PricePerUnit  types.FlexDecimal     `json:"price_per_unit"`
	PaymentMethod string                `json:"payment_method" validate:"required"`
	Customer      string                `json:"customer"`
	Date          string                `json:"date"`
	Notes         string                `json:"notes"`
	BulkItems     []saleBulkLineRequest `json:"bulk_items"`
}

func (r saleCreateRequest) toRequest() sales.Request {
	req := sales.Request{
		ItemID:        strings.TrimSpace(r.ItemID),
		PaymentMethod: enums.PaymentMethod(strings.TrimSpace(r.PaymentMethod)),
		Customer:      strings.TrimSpace(r.Customer),
		Date:          strings.TrimSpace(r.Date),
		Notes:         r.Notes,
	}
	if r.Quantity.Set {
		req.Quantity = r.Quantity.Value
	}
	if r.AppliedPrice.Set {
		price := r.AppliedPrice.Value
		req.AppliedPrice = &price
	}
	if r.PricePerUnit.Set {
		price := r.PricePerUnit.Value
		req.PricePerUnit = &price
	}
	for _, line := range r.BulkItems {
		req.BulkLines = append(req.BulkLines, sales.BulkLine{
			ItemID:   strings.TrimSpace(line.ItemID),
			Quantity: line.Quantity.Value,
		})
	}
	return req
}

// SaleCreate handles POST /api/v1/sales for both single-item and bulk
// requests.
func SaleCreate(engine *sales.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale engine unavailable"))
			return
		}

		var payload saleCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := engine.Sell(r.Context(), payload.toRequest())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// SaleList handles GET /api/v1/sales.
func SaleList(engine *sales.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale engine unavailable"))
			return
		}

		records, err := engine.ListSales(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"sales": records, "count": len(records)})
	}
}
