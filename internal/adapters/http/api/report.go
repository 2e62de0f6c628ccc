package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	service "github.com/okian/availreport/internal/app"
	"github.com/okian/availreport/internal/domain/sample"
	"github.com/okian/availreport/pkg/logger"
)

// DownloadName is the attachment file name used when ?download=1 is set.
const DownloadName = "availability_report.html"

const multipartMemory = 8 << 20

// ReportHandler renders uploaded spreadsheets and the demo dataset.
type ReportHandler struct {
	deps     Dependencies
	maxBytes int64
	logger   logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies, maxBytes int64, log logger.Logger) *ReportHandler {
	return &ReportHandler{deps: deps, maxBytes: maxBytes, logger: log}
}

// HandleUpload handles POST /report with a multipart "file" field.
// ?variant= selects the renderer and ?download=1 asks for an attachment.
func (h *ReportHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	file, name, err := readUpload(w, r, h.maxBytes)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	defer func() { _ = file.Close() }()

	h.render(w, r, service.Source{Name: name, Reader: file})
}

// HandleSample handles GET /report/sample.
func (h *ReportHandler) HandleSample(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, service.Source{Name: "sample", Table: sample.Table()})
}

func (h *ReportHandler) render(w http.ResponseWriter, r *http.Request, src service.Source) {
	variant := r.URL.Query().Get("variant")
	if variant == "" {
		variant = h.deps.Variant()
	}

	doc, err := h.deps.GenerateVariant(r.Context(), src, variant)
	if err != nil {
		h.logger.Warn(r.Context(), "report request failed",
			logger.String("request_id", w.Header().Get(HeaderRequestID)),
			logger.String("source", src.Name),
			logger.Error(err),
		)
		writeGenerateError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.HTML)))
	w.Header().Set("X-Report-Variant", doc.Variant)
	w.Header().Set("X-Report-Records", strconv.Itoa(doc.Records))
	if wantDownload(r) {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DownloadName))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.HTML)
}

func wantDownload(r *http.Request) bool {
	ok, err := strconv.ParseBool(r.URL.Query().Get("download"))
	return err == nil && ok
}

// readUpload limits the request body and returns the "file" part.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (multipart.File, string, error) {
	if r.ContentLength > maxBytes {
		return nil, "", fmt.Errorf("%w: %d bytes", ErrTooLarge, maxBytes)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", fmt.Errorf("%w: %d bytes", ErrTooLarge, tooLarge.Limit)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", ErrMissingFile
	}
	return file, header.Filename, nil
}

func writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, err)
		return
	}
	writeError(w, http.StatusBadRequest, CodeBadRequest, err)
}
