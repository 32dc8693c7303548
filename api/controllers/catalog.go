package controllers

import (
	"net/http"

	"github.com/smartshoplabs/smartshop-backend/api/responses"
	"github.com/smartshoplabs/smartshop-backend/internal/catalog"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
)

// CatalogList serves the filtered product listing. All three filters
// come from query parameters and compose with AND semantics.
func CatalogList(cat *catalog.Catalog, cfg catalog.FilterConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query := r.URL.Query()
		band, err := catalog.ParsePriceBand(query.Get("price_band"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products := cat.List(catalog.Query{
			Search:   query.Get("q"),
			Category: query.Get("category"),
			Band:     band,
		}, cfg)

		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"count":    len(products),
		})
	}
}

// CatalogCategories serves the category chips, All first.
func CatalogCategories(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": cat.Categories()})
	}
}
