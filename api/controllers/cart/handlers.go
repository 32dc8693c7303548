package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartshoplabs/smartshop-backend/api/responses"
	"github.com/smartshoplabs/smartshop-backend/api/validators"
	cartsvc "github.com/smartshoplabs/smartshop-backend/internal/cart"
	"github.com/smartshoplabs/smartshop-backend/internal/catalog"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
)

// CartFetch exposes the current cart snapshot plus the loading flag.
func CartFetch(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		responses.WriteSuccess(w, newCartView(manager.Snapshot(), manager.Loading()))
	}
}

// CartAdd resolves the product from the catalog and adds it to the cart.
func CartAdd(manager *cartsvc.Manager, cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil || cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.Get(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		if err := manager.Add(r.Context(), product); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(manager.Snapshot(), manager.Loading()))
	}
}

// CartRemove decrements one unit of the product.
func CartRemove(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		productID := chi.URLParam(r, "productId")
		if err := manager.Remove(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(manager.Snapshot(), manager.Loading()))
	}
}

// CartRemoveAll drops the whole line for the product.
func CartRemoveAll(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		productID := chi.URLParam(r, "productId")
		if err := manager.RemoveAll(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(manager.Snapshot(), manager.Loading()))
	}
}

// CartClear empties the cart.
func CartClear(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		if err := manager.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(manager.Snapshot(), manager.Loading()))
	}
}
