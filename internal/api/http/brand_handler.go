package http

import (
	"net/http"

	"easyrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type BrandHandler struct {
	brandSvc service.BrandService
}

func NewBrandHandler(brandSvc service.BrandService) *BrandHandler {
	return &BrandHandler{brandSvc: brandSvc}
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brandSvc.ListBrands(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	brand, err := h.brandSvc.GetBrand(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	brand, err := h.brandSvc.CreateBrand(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, brand)
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	brand, err := h.brandSvc.UpdateBrand(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.brandSvc.DeleteBrand(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
