package controllers

import (
	"net/http"

	"github.com/smartshoplabs/smartshop-backend/api/responses"
	checkoutsvc "github.com/smartshoplabs/smartshop-backend/internal/checkout"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
)

// Checkout confirms the order for the current cart contents.
func Checkout(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		summary, err := svc.Confirm(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}
