package api

import (
	"net/http"

	service "github.com/okian/availreport/internal/app"
)

// SummaryHandler profiles uploaded spreadsheets.
type SummaryHandler struct {
	deps     Dependencies
	maxBytes int64
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies, maxBytes int64) *SummaryHandler {
	return &SummaryHandler{deps: deps, maxBytes: maxBytes}
}

// HandleSummary handles POST /summary and returns the overview as JSON.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	file, name, err := readUpload(w, r, h.maxBytes)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	defer func() { _ = file.Close() }()

	ov, err := h.deps.Inspect(r.Context(), service.Source{Name: name, Reader: file})
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}
