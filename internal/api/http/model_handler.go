package http

import (
	"net/http"

	"easyrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type ModelHandler struct {
	modelSvc service.ModelService
}

func NewModelHandler(modelSvc service.ModelService) *ModelHandler {
	return &ModelHandler{modelSvc: modelSvc}
}

func (h *ModelHandler) List(w http.ResponseWriter, r *http.Request) {
	models, err := h.modelSvc.ListModels(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models)
}

func (h *ModelHandler) ListByBrand(w http.ResponseWriter, r *http.Request) {
	models, err := h.modelSvc.ListModelsByBrand(r.Context(), mux.Vars(r)["brandId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models)
}

func (h *ModelHandler) Get(w http.ResponseWriter, r *http.Request) {
	model, err := h.modelSvc.GetModel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (h *ModelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	model := req.toDomain("")
	if err := h.modelSvc.CreateModel(r.Context(), model); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, model)
}

func (h *ModelHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	model := req.toDomain(mux.Vars(r)["id"])
	if err := h.modelSvc.UpdateModel(r.Context(), model); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (h *ModelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.modelSvc.DeleteModel(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
