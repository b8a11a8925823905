package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/afrimarket/internal/domain/category"
	"github.com/example/afrimarket/internal/domain/product"
)

// Product Handlers

// GetProducts lists the catalog narrowed by ?q= and ?category=. The category
// may be given by name or slug.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cat, err := category.Resolve(q.Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.store.FilterProducts(q.Get("q"), cat))
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	p, err := h.store.Product(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in product.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Category) != "" {
		cat, err := category.Resolve(in.Category)
		if err != nil || category.IsAll(cat) {
			respondJSONError(w, "Unknown category", http.StatusBadRequest)
			return
		}
		in.Category = cat
	}

	created, err := h.store.AddProduct(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	if err := h.store.DeleteProduct(r.Context(), id, confirmed(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

// Reference data

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Categories())
}

func (h *Handlers) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.store.Countries()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, countries)
}

func (h *Handlers) GetCountry(w http.ResponseWriter, r *http.Request) {
	code := extractPathParam(r.URL.Path, "/countries/")
	c, err := h.store.Country(code)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}
