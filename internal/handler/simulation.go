package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/emprestai/emprestai-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req service.SimulationInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to decode simulation request")
		h.fail(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	sim, err := h.simulations.Simulate(r.Context(), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "simulation calculated", sim)
}

func (h *Handler) ExportSimulation(w http.ResponseWriter, r *http.Request) {
	var req service.SimulationInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	data, err := h.simulations.Export(r.Context(), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="simulacao_%d_meses.xlsx"`, req.TermMonths))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WithError(err).Error("Failed to write export")
	}
}

func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	params := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.fail(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := h.tools.Call(r.Context(), name, params)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, name, result)
}
