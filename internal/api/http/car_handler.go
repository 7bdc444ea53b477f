package http

import (
	"net/http"

	"easyrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type CarHandler struct {
	carSvc service.CarService
}

func NewCarHandler(carSvc service.CarService) *CarHandler {
	return &CarHandler{carSvc: carSvc}
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.carSvc.ListCars(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

// ListAvailable returns cars with no rental overlapping ?start=&end=.
func (h *CarHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cars, err := h.carSvc.ListAvailableCars(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	car, err := h.carSvc.GetCar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	car := req.toDomain("")
	if err := h.carSvc.CreateCar(r.Context(), car); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	car := req.toDomain(mux.Vars(r)["id"])
	if err := h.carSvc.UpdateCar(r.Context(), car); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.carSvc.DeleteCar(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
