package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/availreport/internal/adapters/loader"
	"github.com/okian/availreport/internal/adapters/render"
	"github.com/okian/availreport/internal/domain/normalize"
	"github.com/okian/availreport/internal/domain/types"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrMissingFile = errors.New("multipart field \"file\" is required")
	ErrTooLarge    = errors.New("upload exceeds size limit")
)

// Error codes returned in types.ErrorResponse.
const (
	CodeBadRequest         = "bad_request"
	CodeMissingColumns     = "missing_columns"
	CodeUnsupportedFormat  = "unsupported_format"
	CodeUnknownVariant     = "unknown_variant"
	CodeTooLarge           = "upload_too_large"
	CodeInvalidSpreadsheet = "invalid_spreadsheet"
	CodeCanceled           = "canceled"
	CodeTimeout            = "timeout"
	CodeInternal           = "internal_error"
)

// StatusClientClosedRequest is reported when the caller went away before
// the report was ready.
const StatusClientClosedRequest = 499

// writeGenerateError maps generator failures to status codes.
func writeGenerateError(w http.ResponseWriter, err error) {
	var mc *normalize.MissingColumnsError
	switch {
	case errors.As(err, &mc):
		writeJSON(w, http.StatusUnprocessableEntity, types.ErrorResponse{
			Code:    CodeMissingColumns,
			Message: mc.Error(),
			Missing: mc.Missing,
		})
	case errors.Is(err, loader.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, CodeUnsupportedFormat, err)
	case errors.Is(err, render.ErrUnknownVariant):
		writeError(w, http.StatusBadRequest, CodeUnknownVariant, err)
	case errors.Is(err, loader.ErrDecode),
		errors.Is(err, loader.ErrEmptySheet),
		errors.Is(err, loader.ErrNoWorksheet):
		writeError(w, http.StatusBadRequest, CodeInvalidSpreadsheet, err)
	case errors.Is(err, context.Canceled):
		writeError(w, StatusClientClosedRequest, CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, CodeTimeout, err)
	default:
		writeError(w, http.StatusInternalServerError, CodeInternal, nil)
	}
}
