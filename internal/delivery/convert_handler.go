package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/say_cheerfully/internal/ports"
	"github.com/goccy/go-json"
)

const (
	msgTextRequired  = "Text is required"
	msgConvertFailed = "Failed to convert text to speech"
)

type ConvertHandler struct {
	service ports.ConversionService
	log     *logger.ZapLogger
}

func NewConvertHandler(service ports.ConversionService, log *logger.ZapLogger) *ConvertHandler {
	return &ConvertHandler{
		service: service,
		log:     log,
	}
}

// POST /convert
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": msgTextRequired})
		return
	}

	res, err := h.service.Convert(r.Context(), req.Text)
	if errors.Is(err, ports.ErrTextRequired) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": msgTextRequired})
		return
	}
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "error in /convert", Error: err})
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   msgConvertFailed,
			"details": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
