package scoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cardioscope-ai/riskscore/pkg/common/logger"
	"github.com/cardioscope-ai/riskscore/pkg/common/models"
	"github.com/cardioscope-ai/riskscore/pkg/features"
	"github.com/cardioscope-ai/riskscore/pkg/history"
	"github.com/cardioscope-ai/riskscore/pkg/normalizer"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/predictions", h.handleScore).Methods(http.MethodPost)
	r.HandleFunc("/schemas", h.handleListSchemas).Methods(http.MethodGet)
	r.HandleFunc("/history", h.handleListHistory).Methods(http.MethodGet)
	r.HandleFunc("/history", h.handleClearHistory).Methods(http.MethodDelete)
	r.HandleFunc("/history/rows/{index}", h.handleDeleteHistoryRow).Methods(http.MethodDelete)
	r.HandleFunc("/history/{id}", h.handleDeleteHistory).Methods(http.MethodDelete)
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	var req models.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.service.Score(r.Context(), req)
	if err != nil {
		status, message := classifyScoreError(err)
		if status == http.StatusInternalServerError {
			logger.Log.WithError(err).Error("scoring request failed")
		}
		http.Error(w, message, status)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": result})
}

func (h *Handler) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": h.service.Schemas()})
}

func (h *Handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context())
	if err != nil {
		if errors.Is(err, ErrHistoryDisabled) {
			http.Error(w, "history persistence is disabled", http.StatusBadRequest)
			return
		}
		logger.Log.WithError(err).Error("failed to list history")
		http.Error(w, "failed to list history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": records})
}

func (h *Handler) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.DeleteHistory(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrHistoryDisabled):
			http.Error(w, "history persistence is disabled", http.StatusBadRequest)
		case errors.Is(err, history.ErrRecordNotFound):
			http.Error(w, "record not found", http.StatusNotFound)
		default:
			logger.Log.WithError(err).Error("failed to delete history record")
			http.Error(w, "failed to delete record", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteHistoryRow is the positional form kept for callers that render
// the table by row number; ids are the stable path.
func (h *Handler) handleDeleteHistoryRow(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid row index", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteHistoryAt(r.Context(), index); err != nil {
		switch {
		case errors.Is(err, ErrHistoryDisabled):
			http.Error(w, "history persistence is disabled", http.StatusBadRequest)
		case errors.Is(err, history.ErrIndexOutOfRange):
			http.Error(w, "row index out of range", http.StatusBadRequest)
		default:
			logger.Log.WithError(err).Error("failed to delete history row")
			http.Error(w, "failed to delete row", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearHistory(r.Context()); err != nil {
		if errors.Is(err, ErrHistoryDisabled) {
			http.Error(w, "history persistence is disabled", http.StatusBadRequest)
			return
		}
		logger.Log.WithError(err).Error("failed to clear history")
		http.Error(w, "failed to clear history", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func classifyScoreError(err error) (int, string) {
	switch {
	case normalizer.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, features.ErrIncompleteVector):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, features.ErrSchemaUnknown):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "scoring failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("failed to encode response")
	}
}
