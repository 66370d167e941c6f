package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/migueldelacruz-dev/vapetrack-backend/api/responses"
	"github.com/migueldelacruz-dev/vapetrack-backend/api/validators"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/loans"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
)

type loanDueDateRequest struct {
	DueDate string `json:"due_date" validate:"required"`
}

// LoanList handles GET /api/v1/loans.
func LoanList(ledger *loans.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ledger == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loan ledger unavailable"))
			return
		}

		entries, err := ledger.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"loans": entries, "count": len(entries)})
	}
}

// LoanMarkPaid handles POST /api/v1/loans/{loanId}/paid.
func LoanMarkPaid(ledger *loans.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ledger == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loan ledger unavailable"))
			return
		}

		loanID := strings.TrimSpace(chi.URLParam(r, "loanId"))
		if loanID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "loan id is required"))
			return
		}

		loan, err := ledger.MarkPaid(r.Context(), loanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loan)
	}
}

// LoanSetDueDate handles POST /api/v1/loans/{loanId}/due-date.
func LoanSetDueDate(ledger *loans.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ledger == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loan ledger unavailable"))
			return
		}

		loanID := strings.TrimSpace(chi.URLParam(r, "loanId"))
		if loanID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "loan id is required"))
			return
		}

		var payload loanDueDateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loan, err := ledger.SetDueDate(r.Context(), loanID, payload.DueDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loan)
	}
}
