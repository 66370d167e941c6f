package controllers

import (
	"net/http"
	"strings"

	"github.com/migueldelacruz-dev/vapetrack-backend/api/responses"
	"github.com/migueldelacruz-dev/vapetrack-backend/api/validators"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/warranty"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/types"
)

type warrantyClaimRequest struct {
	ProductID string        `json:"product_id" validate:"required"`
	Quantity  types.FlexInt `json:"quantity"`
	Reason    string        `json:"reason"`
	Customer  string        `json:"customer"`
	Date      string        `json:"date"`
	Notes     string        `json:"notes"`
}

func (r warrantyClaimRequest) toInput() warranty.ClaimInput {
	return warranty.ClaimInput{
		ProductID: strings.TrimSpace(r.ProductID),
		Quantity:  r.Quantity.Value,
		Reason:    strings.TrimSpace(r.Reason),
		Customer:  strings.TrimSpace(r.Customer),
		Date:      strings.TrimSpace(r.Date),
		Notes:     r.Notes,
	}
}

// WarrantyClaim handles POST /api/v1/warranty.
func WarrantyClaim(engine *warranty.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "warranty engine unavailable"))
			return
		}

		var payload warrantyClaimRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := engine.ProcessClaim(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// WarrantyList handles GET /api/v1/warranty.
func WarrantyList(engine *warranty.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "warranty engine unavailable"))
			return
		}

		claims, err := engine.ListClaims(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"claims": claims, "count": len(claims)})
	}
}
