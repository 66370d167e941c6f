package controllers

import (
	"net/http"
	"strings"

	"github.com/migueldelacruz-dev/vapetrack-backend/api/responses"
	"github.com/migueldelacruz-dev/vapetrack-backend/api/validators"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/inventory"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/types"
)

type inventoryAddRequest struct {
	ID       string            `json:"id"`
	Category string            `json:"category" validate:"required"`
	Name     string            `json:"item_name" validate:"required"`
	Version  string            `json:"version"`
	Flavor   string            `json:"flavor"`
	Quantity types.FlexInt     `json:"quantity"`
	Price    types.FlexDecimal `json:"price"`
	Cost     types.FlexDecimal `json:"cost"`
	Date     string            `json:"date_added"`
	Notes    string            `json:"notes"`
}

func (r inventoryAddRequest) toInput() inventory.AddItemInput {
	input := inventory.AddItemInput{
		ID:       strings.TrimSpace(r.ID),
		Category: enums.Category(strings.TrimSpace(r.Category)),
		Name:     strings.TrimSpace(r.Name),
		Version:  strings.TrimSpace(r.Version),
		Flavor:   strings.TrimSpace(r.Flavor),
		Date:     strings.TrimSpace(r.Date),
		Notes:    r.Notes,
	}
	if r.Quantity.Set {
		input.Quantity = r.Quantity.Value
	}
	if r.Price.Set {
		input.Price = r.Price.Value
	}
	if r.Cost.Set {
		cost := r.Cost.Value
		input.Cost = &cost
	}
	return input
}

// InventoryList handles GET /api/v1/inventory with an optional category
// filter.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items, "count": len(items)})
	}
}

// InventoryLowStock handles GET /api/v1/inventory/low-stock.
func InventoryLowStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items, "count": len(items)})
	}
}

// InventoryAdd handles POST /api/v1/inventory.
func InventoryAdd(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload inventoryAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Add(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}
