package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/products (200 OK, 503 Service unavailable)

type ProductsHandler struct {
	catalog port.CatalogProvider
}

func RegisterProducts(mux *http.ServeMux, catalog port.CatalogProvider) {
	h := ProductsHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		http.Error(
			w, "failed to load products", http.StatusServiceUnavailable,
		)
		log.Error("failed to load products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, h.toView(ps), log)
}

func (ProductsHandler) toView(ps []domain.Product) []Product {
	view := make([]Product, len(ps))
	for i, p := range ps {
		view[i] = Product{
			ProductID: p.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			Image:     p.Image,
			Tags:      p.Tags,
			Slug:      p.Slug,
		}
	}
	return view
}
